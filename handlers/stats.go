// handlers/stats.go
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"stemquest/database"
	"stemquest/models"
)

// GetOnlinePlayersCount returns the number of currently online players
// GET /api/stats/players
func GetOnlinePlayersCount(c *fiber.Ctx) error {
	db := database.GetDB()

	// Count users who have been active in the last 5 minutes
	cutoffTime := time.Now().UTC().Add(-5 * time.Minute)

	var count int64
	err := db.Model(&models.User{}).Where("last_activity > ?", cutoffTime).Count(&count).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to get online players count",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   count,
	})
}

// GetLastPlayedTime returns when the current user last recorded a game
// GET /api/stats/last-played
func GetLastPlayedTime(c *fiber.Ctx) error {
	db := database.GetDB()

	userID := c.Locals("userId")
	if userID == nil {
		return c.JSON(fiber.Map{
			"success":     true,
			"last_played": "Never",
		})
	}

	var event models.PlayEvent
	err := db.Where("user_id = ?", userID).Order("created_at DESC").First(&event).Error
	if err != nil {
		return c.JSON(fiber.Map{
			"success":     true,
			"last_played": "Never",
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"last_played": event.CreatedAt.Format("Jan 2, 2006 at 3:04 PM"),
	})
}
