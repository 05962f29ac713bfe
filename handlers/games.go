// handlers/games.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stemquest/database"
	"stemquest/models"
)

// GetGames lists the active game catalog.
// GET /api/games?category=science
func GetGames(c *fiber.Ctx) error {
	db := database.GetDB()

	query := db.Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		if !models.ValidCategory(category) {
			return c.Status(400).JSON(fiber.Map{"error": "Unknown category"})
		}
		query = query.Where("category = ?", category)
	}

	var games []models.Game
	if err := query.Order("category, name").Find(&games).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch games"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"games":   games,
		"total":   len(games),
	})
}

// GetGame returns one catalog entry.
// GET /api/games/:id
func GetGame(c *fiber.Ctx) error {
	db := database.GetDB()

	var game models.Game
	if err := db.Where("id = ?", c.Params("id")).First(&game).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Game not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"game":    game,
	})
}
