// models/play_event.go
package models

import (
	"math"
	"time"
)

// PlayEvent records one completed or attempted game session. Rows are
// append-only: nothing in the application mutates an event after Create.
// CreatedAt is assigned at write time and is the sole basis for
// leaderboard period windowing.
type PlayEvent struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	SessionID string `gorm:"size:36;index" json:"session_id"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	User      *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	GameID    string `gorm:"not null;size:50;index" json:"game_id"`
	Category  string `gorm:"not null;index;size:20" json:"category"`

	Score              float64 `gorm:"default:0" json:"score"`
	MaxScore           float64 `gorm:"default:0" json:"max_score"`
	QuestionsAttempted int     `gorm:"default:0" json:"questions_attempted"`
	TotalQuestions     int     `gorm:"default:0" json:"total_questions"`
	TimeSpentSeconds   float64 `gorm:"default:0" json:"time_spent_seconds"`
	Streak             int     `gorm:"default:0" json:"streak"`
	HintsUsed          int     `gorm:"default:0" json:"hints_used"`
	Difficulty         string  `gorm:"default:'medium';size:20" json:"difficulty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (PlayEvent) TableName() string {
	return "play_events"
}

// Accuracy returns the session accuracy as a rounded percentage.
// A maxScore of zero yields 0 rather than a division error.
func (e *PlayEvent) Accuracy() int {
	if e.MaxScore == 0 {
		return 0
	}
	return int(math.Round(e.Score / e.MaxScore * 100))
}

// CompletionRate returns the share of questions attempted as a rounded
// percentage.
func (e *PlayEvent) CompletionRate() int {
	if e.TotalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(e.QuestionsAttempted) / float64(e.TotalQuestions) * 100))
}

// Completed reports whether the session reached every question.
func (e *PlayEvent) Completed() bool {
	return e.QuestionsAttempted >= e.TotalQuestions
}
