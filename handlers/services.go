// handlers/services.go - shared service singletons
package handlers

import (
	"stemquest/database"
	"stemquest/services"
)

var (
	achievementService *services.AchievementService
	leaderboardService *services.LeaderboardService
	playEventStore     services.PlayEventStore
)

// InitServices wires the engines to their GORM-backed stores. Call after
// database.InitDB.
func InitServices() {
	db := database.GetDB()
	playEventStore = database.NewPlayEventStore(db)
	achievementService = services.NewAchievementService(database.NewAchievementAwardStore(db))
	leaderboardService = services.NewLeaderboardService(playEventStore, database.NewLeaderboardStore(db))
}
