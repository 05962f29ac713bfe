// database/stores.go - GORM-backed implementations of the service store
// contracts
package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"stemquest/models"
	"stemquest/services"
)

// GormPlayEventStore persists play events.
type GormPlayEventStore struct {
	db *gorm.DB
}

func NewPlayEventStore(db *gorm.DB) *GormPlayEventStore {
	return &GormPlayEventStore{db: db}
}

func (s *GormPlayEventStore) Append(event *models.PlayEvent) error {
	if err := s.db.Create(event).Error; err != nil {
		return storeErr("append play event", err)
	}
	return nil
}

func (s *GormPlayEventStore) QueryWindow(category string, start, end time.Time) ([]models.PlayEvent, error) {
	query := s.db.Where("created_at >= ? AND created_at < ?", start, end)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var events []models.PlayEvent
	if err := query.Order("id ASC").Find(&events).Error; err != nil {
		return nil, storeErr("query play events", err)
	}
	return events, nil
}

// GormAchievementAwardStore persists earned awards.
type GormAchievementAwardStore struct {
	db *gorm.DB
}

func NewAchievementAwardStore(db *gorm.DB) *GormAchievementAwardStore {
	return &GormAchievementAwardStore{db: db}
}

func (s *GormAchievementAwardStore) ListByUser(userID uint) ([]models.AchievementAward, error) {
	var awards []models.AchievementAward
	if err := s.db.Where("user_id = ?", userID).Order("earned_at DESC").Find(&awards).Error; err != nil {
		return nil, storeErr("list awards", err)
	}
	return awards, nil
}

// InsertAll commits the batch in one transaction. Tripping the unique
// award index rolls the whole batch back and reports ErrConflict.
func (s *GormAchievementAwardStore) InsertAll(awards []models.AchievementAward) error {
	if len(awards) == 0 {
		return nil
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range awards {
			if err := tx.Create(&awards[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return services.ErrConflict
		}
		return storeErr("insert awards", err)
	}
	return nil
}

// GormLeaderboardStore persists rebuilt snapshots.
type GormLeaderboardStore struct {
	db *gorm.DB
}

func NewLeaderboardStore(db *gorm.DB) *GormLeaderboardStore {
	return &GormLeaderboardStore{db: db}
}

// ReplaceSnapshot deletes and re-inserts the (category, period) entry
// set inside one transaction so readers see a single state transition.
func (s *GormLeaderboardStore) ReplaceSnapshot(category, period string, entries []models.LeaderboardEntry) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category = ? AND period = ?", category, period).
			Delete(&models.LeaderboardEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return storeErr("replace snapshot", err)
	}
	return nil
}

func (s *GormLeaderboardStore) TopN(category, period string, limit int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	if err := s.db.Preload("User").
		Where("category = ? AND period = ?", category, period).
		Order("rank ASC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, storeErr("read snapshot", err)
	}
	return entries, nil
}

func (s *GormLeaderboardStore) RankOf(userID uint, category, period string) (*models.LeaderboardEntry, error) {
	var entry models.LeaderboardEntry
	err := s.db.Where("user_id = ? AND category = ? AND period = ?", userID, category, period).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, storeErr("read rank", err)
	}
	return &entry, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, services.ErrStoreUnavailable, err)
}
