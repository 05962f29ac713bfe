// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"stemquest/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.PlayEvent{},
		&models.LeaderboardEntry{},
		&models.AchievementAward{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()
	SeedGameCatalog()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes the engines query on
func createIndexes() {
	db := GetDB()

	// Play event window scans
	db.Exec("CREATE INDEX IF NOT EXISTS idx_play_events_created ON play_events(created_at)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_play_events_category_created ON play_events(category, created_at)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_play_events_user ON play_events(user_id)")

	// Snapshot reads
	db.Exec("CREATE INDEX IF NOT EXISTS idx_board_read ON leaderboard_entries(category, period, rank)")

	// Award history reads
	db.Exec("CREATE INDEX IF NOT EXISTS idx_awards_user ON achievement_awards(user_id)")

	// User lookups
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_activity ON users(last_activity)")
}
