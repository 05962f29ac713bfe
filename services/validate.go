// services/validate.go - play event validation
package services

import (
	"stemquest/models"
)

// ValidateEvent rejects malformed play events before anything is
// persisted. A failed validation writes nothing.
func ValidateEvent(e *models.PlayEvent) error {
	if e.UserID == 0 {
		return &ValidationError{Field: "user_id", Reason: "required"}
	}
	if e.GameID == "" {
		return &ValidationError{Field: "game_id", Reason: "required"}
	}
	if !models.ValidCategory(e.Category) {
		return &ValidationError{Field: "category", Reason: "unknown category"}
	}
	if !models.ValidDifficulty(e.Difficulty) {
		return &ValidationError{Field: "difficulty", Reason: "unknown difficulty"}
	}
	if e.Score < 0 {
		return &ValidationError{Field: "score", Reason: "must be non-negative"}
	}
	if e.MaxScore < 0 {
		return &ValidationError{Field: "max_score", Reason: "must be non-negative"}
	}
	if e.TotalQuestions < 1 {
		return &ValidationError{Field: "total_questions", Reason: "a session must have at least one question"}
	}
	if e.QuestionsAttempted < 0 {
		return &ValidationError{Field: "questions_attempted", Reason: "must be non-negative"}
	}
	if e.TimeSpentSeconds < 0 {
		return &ValidationError{Field: "time_spent_seconds", Reason: "must be non-negative"}
	}
	if e.Streak < 0 {
		return &ValidationError{Field: "streak", Reason: "must be non-negative"}
	}
	if e.HintsUsed < 0 {
		return &ValidationError{Field: "hints_used", Reason: "must be non-negative"}
	}
	return nil
}
