// services/stores.go - persistence contracts consumed by the engines
package services

import (
	"time"

	"stemquest/models"
)

// PlayEventStore is the append-only event log both engines read.
type PlayEventStore interface {
	// Append persists a new immutable play event.
	Append(event *models.PlayEvent) error
	// QueryWindow returns events with created_at in [start, end).
	// An empty category (or "overall") spans all categories.
	QueryWindow(category string, start, end time.Time) ([]models.PlayEvent, error)
}

// AchievementAwardStore holds the authoritative award history.
type AchievementAwardStore interface {
	// ListByUser returns every award the user has earned.
	ListByUser(userID uint) ([]models.AchievementAward, error)
	// InsertAll persists the batch atomically: either every award is
	// committed or none is. A duplicate key yields ErrConflict.
	InsertAll(awards []models.AchievementAward) error
}

// LeaderboardStore holds rebuilt snapshots.
type LeaderboardStore interface {
	// ReplaceSnapshot swaps the full entry set for (category, period)
	// in one transaction, so readers never observe a partial board.
	ReplaceSnapshot(category, period string, entries []models.LeaderboardEntry) error
	// TopN returns the first limit entries by rank.
	TopN(category, period string, limit int) ([]models.LeaderboardEntry, error)
	// RankOf returns the user's entry, or ErrNotFound if the user has
	// no qualifying activity in the snapshot.
	RankOf(userID uint, category, period string) (*models.LeaderboardEntry, error)
}
