// handlers/leaderboard.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"stemquest/models"
	"stemquest/services"
)

// GetLeaderboard rebuilds and returns a (category, period) snapshot.
// GET /api/leaderboard?category=mathematics&period=weekly&limit=50&user_id=7
func GetLeaderboard(c *fiber.Ctx) error {
	category := c.Query("category", models.CategoryOverall)
	period := c.Query("period", models.PeriodWeekly)
	limit := clampInt(c.QueryInt("limit", 50), 1, 100)

	entries, err := leaderboardService.Rebuild(category, period, time.Now().UTC())
	if err != nil {
		return leaderboardError(c, err)
	}
	broadcastSnapshot(category, period, entries)

	top, err := leaderboardService.TopPlayers(category, period, limit)
	if err != nil {
		return leaderboardError(c, err)
	}

	response := fiber.Map{
		"success":     true,
		"category":    category,
		"period":      period,
		"top_players": top,
		"total":       len(entries),
		"user_rank":   nil,
	}

	// Unranked users get an explicit null, not an error
	if userParam := c.Query("user_id"); userParam != "" {
		userID, err := strconv.ParseUint(userParam, 10, 32)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid user_id"})
		}
		entry, err := leaderboardService.UserRank(uint(userID), category, period)
		if err != nil {
			return leaderboardError(c, err)
		}
		if entry != nil {
			response["user_rank"] = entry
		}
	}

	return c.JSON(response)
}

// RefreshLeaderboard is the explicit rebuild trigger.
// POST /api/leaderboard/refresh {"category": "...", "period": "..."}
func RefreshLeaderboard(c *fiber.Ctx) error {
	var req struct {
		Category string `json:"category"`
		Period   string `json:"period"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Category == "" {
		req.Category = models.CategoryOverall
	}
	if req.Period == "" {
		req.Period = models.PeriodWeekly
	}

	entries, err := leaderboardService.Rebuild(req.Category, req.Period, time.Now().UTC())
	if err != nil {
		return leaderboardError(c, err)
	}
	broadcastSnapshot(req.Category, req.Period, entries)

	return c.JSON(fiber.Map{
		"success":       true,
		"category":      req.Category,
		"period":        req.Period,
		"entries_count": len(entries),
	})
}

// GetUserRank returns a user's rank in the current snapshot.
// GET /api/leaderboard/user/:id?category=science&period=daily
func GetUserRank(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}
	category := c.Query("category", models.CategoryOverall)
	period := c.Query("period", models.PeriodWeekly)

	if category != models.CategoryOverall && !models.ValidCategory(category) {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown category"})
	}
	if !models.ValidPeriod(period) {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown period"})
	}

	entry, err := leaderboardService.UserRank(uint(userID), category, period)
	if err != nil {
		return leaderboardError(c, err)
	}

	if entry == nil {
		// No qualifying activity in the period: unranked, not an error
		return c.JSON(fiber.Map{
			"success":  true,
			"user_id":  userID,
			"category": category,
			"period":   period,
			"rank":     nil,
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"user_id":  userID,
		"category": category,
		"period":   period,
		"rank":     entry.Rank,
		"entry":    entry,
	})
}

func leaderboardError(c *fiber.Ctx, err error) error {
	if services.IsValidation(err) {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(503).JSON(fiber.Map{"error": "Leaderboard unavailable"})
}

// helpers
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
