// handlers/play.go
package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"stemquest/database"
	"stemquest/middleware"
	"stemquest/models"
	"stemquest/services"
)

type RecordPlayRequest struct {
	GameID             string  `json:"game_id"`
	Score              float64 `json:"score"`
	MaxScore           float64 `json:"max_score"`
	QuestionsAttempted int     `json:"questions_attempted"`
	TotalQuestions     int     `json:"total_questions"`
	TimeSpentSeconds   float64 `json:"time_spent_seconds"`
	Streak             int     `json:"streak"`
	HintsUsed          int     `json:"hints_used"`
	Difficulty         string  `json:"difficulty"`
}

// RecordPlay persists one play event and evaluates achievements for it.
// POST /api/play/record
func RecordPlay(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req RecordPlayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()

	// The catalog is the source of truth for the event's category
	var game models.Game
	if err := db.Where("id = ? AND is_active = ?", req.GameID, true).First(&game).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown game"})
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = game.Difficulty
	}

	event := models.PlayEvent{
		SessionID:          uuid.New().String(),
		UserID:             userID,
		GameID:             game.ID,
		Category:           game.Category,
		Score:              req.Score,
		MaxScore:           req.MaxScore,
		QuestionsAttempted: req.QuestionsAttempted,
		TotalQuestions:     req.TotalQuestions,
		TimeSpentSeconds:   req.TimeSpentSeconds,
		Streak:             req.Streak,
		HintsUsed:          req.HintsUsed,
		Difficulty:         difficulty,
	}

	if err := services.ValidateEvent(&event); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := playEventStore.Append(&event); err != nil {
		log.Printf("Failed to record play event: %v", err)
		return c.Status(503).JSON(fiber.Map{"error": "Failed to record play event"})
	}

	// Dashboard counters only; never inputs to ranking or awarding
	db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"total_games": gorm.Expr("total_games + 1"),
		"total_score": gorm.Expr("total_score + ?", int(event.Score)),
	})
	if event.Streak > 0 {
		db.Model(&models.User{}).Where("id = ? AND best_streak < ?", userID, event.Streak).
			Update("best_streak", event.Streak)
	}

	// Achievement evaluation never blocks the recorded event: the event
	// is committed, and evaluation can be replayed later since it is a
	// pure function of (event, prior awards).
	newAchievements, err := achievementService.ProcessEvent(&event)
	if err != nil {
		log.Printf("Achievement evaluation failed for user %d: %v", userID, err)
		newAchievements = []models.AchievementAward{}
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"event":            event,
		"accuracy":         event.Accuracy(),
		"completion_rate":  event.CompletionRate(),
		"new_achievements": newAchievements,
	})
}

// GetPlayHistory returns the user's recent play events.
// GET /api/play/history?limit=20&offset=0
func GetPlayHistory(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := clampInt(c.QueryInt("limit", 20), 1, 100)
	offset := maxInt(c.QueryInt("offset", 0), 0)

	db := database.GetDB()
	var events []models.PlayEvent
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch play history"})
	}

	var total int64
	db.Model(&models.PlayEvent{}).Where("user_id = ?", userID).Count(&total)

	return c.JSON(fiber.Map{
		"success": true,
		"events":  events,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}
