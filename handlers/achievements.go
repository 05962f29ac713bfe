// handlers/achievements.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stemquest/database"
	"stemquest/middleware"
	"stemquest/models"
	"stemquest/services"
)

// GetUserAchievements returns the user's earned awards plus the full
// badge catalog with earned flags.
// GET /api/achievements
func GetUserAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	var earned []models.AchievementAward
	if err := db.Where("user_id = ?", userID).Order("earned_at DESC").Find(&earned).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	earnedMap := make(map[string]models.AchievementAward)
	for _, award := range earned {
		earnedMap[award.Type+"/"+award.Discriminator] = award
	}

	catalog := services.RuleCatalog()
	badges := make([]fiber.Map, 0, len(catalog))
	totalPoints := 0
	for _, rule := range catalog {
		badge := fiber.Map{
			"type":        rule.Type,
			"title":       rule.Title,
			"description": rule.Description,
			"icon":        rule.Icon,
			"rarity":      rule.Rarity,
			"points":      rule.Points,
			"per_game":    rule.PerGame,
			"earned":      false,
		}

		if rule.PerGame {
			// Per-game badges may have been earned in several games
			count := 0
			for _, award := range earned {
				if award.Type == rule.Type {
					count++
				}
			}
			if count > 0 {
				badge["earned"] = true
				badge["times_earned"] = count
			}
		} else if award, ok := earnedMap[rule.Type+"/"+rule.Discriminator]; ok {
			badge["earned"] = true
			badge["earned_at"] = award.EarnedAt
		}

		badges = append(badges, badge)
	}
	for _, award := range earned {
		totalPoints += award.Points
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": earned,
		"badges":       badges,
		"earned":       len(earned),
		"total_points": totalPoints,
	})
}
