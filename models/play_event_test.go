package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayEventAccuracy(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		maxScore float64
		want     int
	}{
		{name: "perfect score", score: 80, maxScore: 80, want: 100},
		{name: "half score", score: 40, maxScore: 80, want: 50},
		{name: "zero max score yields zero not a panic", score: 0, maxScore: 0, want: 0},
		{name: "zero score", score: 0, maxScore: 50, want: 0},
		{name: "rounds to nearest", score: 1, maxScore: 3, want: 33},
		{name: "rounds half up", score: 1, maxScore: 8, want: 13},
		{name: "over max is not clamped", score: 90, maxScore: 80, want: 113},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := PlayEvent{Score: tt.score, MaxScore: tt.maxScore}
			assert.Equal(t, tt.want, e.Accuracy())
		})
	}
}

func TestPlayEventCompletionRate(t *testing.T) {
	tests := []struct {
		name      string
		attempted int
		total     int
		want      int
	}{
		{name: "all questions", attempted: 10, total: 10, want: 100},
		{name: "partial", attempted: 7, total: 10, want: 70},
		{name: "zero total yields zero", attempted: 0, total: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := PlayEvent{QuestionsAttempted: tt.attempted, TotalQuestions: tt.total}
			assert.Equal(t, tt.want, e.CompletionRate())
		})
	}
}

func TestPlayEventCompleted(t *testing.T) {
	assert.True(t, (&PlayEvent{QuestionsAttempted: 10, TotalQuestions: 10}).Completed())
	assert.True(t, (&PlayEvent{QuestionsAttempted: 12, TotalQuestions: 10}).Completed())
	assert.False(t, (&PlayEvent{QuestionsAttempted: 9, TotalQuestions: 10}).Completed())
}
