// models/achievement.go
package models

import "time"

// Achievement types awarded by the evaluator.
const (
	AchievementFirstGame    = "first_game"
	AchievementPerfectScore = "perfect_score"
	AchievementSpeedDemon   = "speed_demon"
	AchievementStreakMaster = "streak_master"
)

// Rarity tiers.
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// AchievementAward is an authoritative, append-only record of one earned
// badge. The unique index on (user_id, type, discriminator) is the
// last-resort guard against duplicate awards; the evaluator checks prior
// awards before inserting.
type AchievementAward struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        uint   `gorm:"not null;uniqueIndex:idx_award_key;index" json:"user_id"`
	User          *User  `json:"-" gorm:"foreignKey:UserID"`
	Type          string `gorm:"not null;size:30;uniqueIndex:idx_award_key" json:"type"`
	Discriminator string `gorm:"size:50;uniqueIndex:idx_award_key" json:"discriminator"`

	Title       string    `gorm:"not null;size:100" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Icon        string    `gorm:"size:50" json:"icon"`
	Category    string    `gorm:"size:20" json:"category"`
	Rarity      string    `gorm:"not null;size:20" json:"rarity"`
	Points      int       `gorm:"default:0" json:"points"`
	EarnedAt    time.Time `json:"earned_at"`
}

func (AchievementAward) TableName() string {
	return "achievement_awards"
}
