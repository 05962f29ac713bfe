// handlers/users.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stemquest/database"
	"stemquest/middleware"
	"stemquest/models"
)

// GetCurrentUser returns the authenticated user's profile.
// GET /api/users/me
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

type UpdateUserRequest struct {
	DisplayName *string `json:"display_name"`
	Avatar      *string `json:"avatar"`
	Grade       *string `json:"grade"`
}

// UpdateCurrentUser updates profile fields.
// PUT /api/users/me
func UpdateCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Grade != nil {
		updates["grade"] = *req.Grade
	}
	if len(updates) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Nothing to update"})
	}

	db := database.GetDB()
	if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	var user models.User
	db.First(&user, userID)

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// GetUserStats returns per-category dashboard aggregates computed from
// the raw play event history.
// GET /api/users/stats
func GetUserStats(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	type CategoryStats struct {
		Category         string  `json:"category"`
		GamesPlayed      int     `json:"games_played"`
		TotalScore       float64 `json:"total_score"`
		AverageScore     float64 `json:"average_score"`
		BestStreak       int     `json:"best_streak"`
		TimeSpentMinutes int     `json:"time_spent_minutes"`
	}

	var stats []CategoryStats
	db.Raw(`
		SELECT
			category,
			COUNT(*) as games_played,
			COALESCE(SUM(score), 0) as total_score,
			COALESCE(ROUND(AVG(score)::numeric, 2), 0) as average_score,
			COALESCE(MAX(streak), 0) as best_streak,
			COALESCE(ROUND(SUM(time_spent_seconds) / 60), 0) as time_spent_minutes
		FROM play_events
		WHERE user_id = ?
		GROUP BY category
		ORDER BY category
	`, userID).Scan(&stats)

	var awardCount int64
	db.Model(&models.AchievementAward{}).Where("user_id = ?", userID).Count(&awardCount)

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"categories":   stats,
		"total_games":  user.TotalGames,
		"total_score":  user.TotalScore,
		"best_streak":  user.BestStreak,
		"achievements": awardCount,
	})
}
