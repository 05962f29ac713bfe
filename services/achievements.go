// services/achievements.go - achievement rule registry and evaluator
package services

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"stemquest/models"
)

// AchievementRule decides whether one incoming play event earns a badge
// the user does not already hold. Rules are independent: each sees the
// same event and the same prior-award history, and returns the new award
// or nil. New rules are added here without touching existing ones.
type AchievementRule struct {
	Type  string
	Check func(event *models.PlayEvent, prior []models.AchievementAward) *models.AchievementAward
}

// Rules is the active rule registry, evaluated in order.
var Rules = []AchievementRule{
	{Type: models.AchievementFirstGame, Check: checkFirstGame},
	{Type: models.AchievementPerfectScore, Check: checkPerfectScore},
	{Type: models.AchievementSpeedDemon, Check: checkSpeedDemon},
	{Type: models.AchievementStreakMaster, Check: checkStreakMaster},
}

// EvaluateAchievements runs every registered rule against the event.
// Pure with respect to its inputs; persisting the result is the caller's
// job.
func EvaluateAchievements(event *models.PlayEvent, prior []models.AchievementAward) []models.AchievementAward {
	earned := []models.AchievementAward{}
	now := time.Now().UTC()
	for _, rule := range Rules {
		if award := rule.Check(event, prior); award != nil {
			award.EarnedAt = now
			earned = append(earned, *award)
		}
	}
	return earned
}

func hasAward(prior []models.AchievementAward, awardType, discriminator string) bool {
	for _, a := range prior {
		if a.Type == awardType && a.Discriminator == discriminator {
			return true
		}
	}
	return false
}

// checkFirstGame fires on the user's first recorded event, once ever.
func checkFirstGame(event *models.PlayEvent, prior []models.AchievementAward) *models.AchievementAward {
	if hasAward(prior, models.AchievementFirstGame, "") {
		return nil
	}
	return &models.AchievementAward{
		UserID:      event.UserID,
		Type:        models.AchievementFirstGame,
		Title:       "First Steps",
		Description: "Complete your first game",
		Icon:        "🎮",
		Category:    event.Category,
		Rarity:      models.RarityCommon,
		Points:      10,
	}
}

// checkPerfectScore fires on a 100% accuracy session, once per game.
func checkPerfectScore(event *models.PlayEvent, prior []models.AchievementAward) *models.AchievementAward {
	if event.Accuracy() != 100 {
		return nil
	}
	if hasAward(prior, models.AchievementPerfectScore, event.GameID) {
		return nil
	}
	return &models.AchievementAward{
		UserID:        event.UserID,
		Type:          models.AchievementPerfectScore,
		Discriminator: event.GameID,
		Title:         "Perfect Score",
		Description:   "Score 100% in a game",
		Icon:          "⭐",
		Category:      event.Category,
		Rarity:        models.RarityRare,
		Points:        50,
	}
}

// speedDemonLimit is the completion time, in seconds, under which a
// finished session counts as a speed run.
const speedDemonLimit = 120

// checkSpeedDemon fires on a completed session under the time limit,
// once per game.
func checkSpeedDemon(event *models.PlayEvent, prior []models.AchievementAward) *models.AchievementAward {
	if !event.Completed() || event.TimeSpentSeconds >= speedDemonLimit {
		return nil
	}
	if hasAward(prior, models.AchievementSpeedDemon, event.GameID) {
		return nil
	}
	return &models.AchievementAward{
		UserID:        event.UserID,
		Type:          models.AchievementSpeedDemon,
		Discriminator: event.GameID,
		Title:         "Speed Demon",
		Description:   "Finish a game in under 2 minutes",
		Icon:          "⚡",
		Category:      event.Category,
		Rarity:        models.RarityRare,
		Points:        40,
	}
}

// Streak thresholds, highest first. The award discriminator is the
// threshold reached, so tiers coexist as distinct keys; a prior award at
// a threshold >= the current one blocks the new award (a higher tier
// supersedes the lower ones, never the other way around).
var streakTiers = []struct {
	Threshold int
	Rarity    string
	Points    int
}{
	{10, models.RarityLegendary, 100},
	{5, models.RarityEpic, 75},
}

func checkStreakMaster(event *models.PlayEvent, prior []models.AchievementAward) *models.AchievementAward {
	for _, tier := range streakTiers {
		if event.Streak < tier.Threshold {
			continue
		}
		for _, a := range prior {
			if a.Type != models.AchievementStreakMaster {
				continue
			}
			if earned, err := strconv.Atoi(a.Discriminator); err == nil && earned >= tier.Threshold {
				return nil
			}
		}
		return &models.AchievementAward{
			UserID:        event.UserID,
			Type:          models.AchievementStreakMaster,
			Discriminator: strconv.Itoa(tier.Threshold),
			Title:         "Streak Master",
			Description:   "Answer " + strconv.Itoa(tier.Threshold) + " questions correctly in a row",
			Icon:          "🔥",
			Category:      event.Category,
			Rarity:        tier.Rarity,
			Points:        tier.Points,
		}
	}
	return nil
}

// AchievementService serializes evaluation per user and commits the
// resulting award batch atomically.
type AchievementService struct {
	awards AchievementAwardStore

	mu        sync.Mutex
	userLocks map[uint]*sync.Mutex
}

func NewAchievementService(awards AchievementAwardStore) *AchievementService {
	return &AchievementService{
		awards:    awards,
		userLocks: make(map[uint]*sync.Mutex),
	}
}

func (s *AchievementService) userLock(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// ProcessEvent evaluates one play event and persists any newly earned
// awards. Two concurrent evaluations for the same user would both pass
// the prior-award check before either commits, so evaluation holds a
// per-user lock; the unique award index is the backstop.
func (s *AchievementService) ProcessEvent(event *models.PlayEvent) ([]models.AchievementAward, error) {
	lock := s.userLock(event.UserID)
	lock.Lock()
	defer lock.Unlock()

	prior, err := s.awards.ListByUser(event.UserID)
	if err != nil {
		return nil, err
	}

	earned := EvaluateAchievements(event, prior)
	if len(earned) == 0 {
		return earned, nil
	}

	if err := s.awards.InsertAll(earned); err != nil {
		if errors.Is(err, ErrConflict) {
			// Another path already committed these awards; idempotency
			// means this is a no-op, not a failure.
			return []models.AchievementAward{}, nil
		}
		return nil, err
	}
	return earned, nil
}

// RuleInfo describes one earnable badge for catalog listings.
type RuleInfo struct {
	Type          string `json:"type"`
	Discriminator string `json:"discriminator,omitempty"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	Rarity        string `json:"rarity"`
	Points        int    `json:"points"`
	PerGame       bool   `json:"per_game"`
}

// RuleCatalog lists every badge the registry can award. Streak tiers
// appear as separate entries since each is a distinct award key.
func RuleCatalog() []RuleInfo {
	return []RuleInfo{
		{Type: models.AchievementFirstGame, Title: "First Steps", Description: "Complete your first game", Icon: "🎮", Rarity: models.RarityCommon, Points: 10},
		{Type: models.AchievementPerfectScore, Title: "Perfect Score", Description: "Score 100% in a game", Icon: "⭐", Rarity: models.RarityRare, Points: 50, PerGame: true},
		{Type: models.AchievementSpeedDemon, Title: "Speed Demon", Description: "Finish a game in under 2 minutes", Icon: "⚡", Rarity: models.RarityRare, Points: 40, PerGame: true},
		{Type: models.AchievementStreakMaster, Discriminator: "5", Title: "Streak Master", Description: "Answer 5 questions correctly in a row", Icon: "🔥", Rarity: models.RarityEpic, Points: 75},
		{Type: models.AchievementStreakMaster, Discriminator: "10", Title: "Streak Master", Description: "Answer 10 questions correctly in a row", Icon: "🔥", Rarity: models.RarityLegendary, Points: 100},
	}
}
