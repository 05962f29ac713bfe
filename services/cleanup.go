// services/cleanup.go - stale guest account cleanup
package services

import (
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"stemquest/models"
)

// CleanupService periodically removes guest accounts that never played
// anything and have been inactive for a while. Accounts with play
// events are kept: play_events is append-only and leaderboard history
// must stay reconstructable.
type CleanupService struct {
	db       *gorm.DB
	interval time.Duration
	maxIdle  time.Duration
	stop     chan struct{}
}

var cleanupService *CleanupService

// InitCleanupService initializes and starts the singleton cleanup
// service unless GUEST_CLEANUP_ENABLED=false.
func InitCleanupService(db *gorm.DB) {
	if strings.EqualFold(os.Getenv("GUEST_CLEANUP_ENABLED"), "false") {
		log.Println("Guest cleanup disabled")
		return
	}
	cleanupService = &CleanupService{
		db:       db,
		interval: time.Hour,
		maxIdle:  7 * 24 * time.Hour,
		stop:     make(chan struct{}),
	}
	go cleanupService.run()
}

// GetCleanupService returns the initialized cleanup service, or nil if
// cleanup is disabled.
func GetCleanupService() *CleanupService {
	return cleanupService
}

// Stop stops the cleanup worker.
func (s *CleanupService) Stop() {
	close(s.stop)
}

func (s *CleanupService) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.CleanupStaleGuests(); err != nil {
				log.Printf("Guest cleanup failed: %v", err)
			}
		case <-s.stop:
			return
		}
	}
}

// CleanupStaleGuests deletes guest users with no play events whose last
// activity is older than the idle cutoff.
func (s *CleanupService) CleanupStaleGuests() error {
	cutoff := time.Now().UTC().Add(-s.maxIdle)

	result := s.db.Where(
		"is_guest = ? AND created_at < ? AND (last_activity IS NULL OR last_activity < ?) AND id NOT IN (SELECT DISTINCT user_id FROM play_events)",
		true, cutoff, cutoff,
	).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("🧹 Cleaned up %d stale guest accounts", result.RowsAffected)
	}
	return nil
}
