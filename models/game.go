// models/game.go
package models

import "time"

// Subject categories. The game catalog is partitioned by these; "overall"
// is a leaderboard pseudo-category that spans all of them.
const (
	CategoryMathematics = "mathematics"
	CategoryScience     = "science"
	CategoryTechnology  = "technology"
	CategoryEngineering = "engineering"
	CategoryOverall     = "overall"
)

// Difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Game is one entry in the closed mini-game catalog. Games are seeded at
// migration time and managed with cmd/catalog-importer; play events must
// reference an active game.
type Game struct {
	ID          string    `gorm:"primaryKey;size:50" json:"id"`
	Name        string    `gorm:"not null;size:100" json:"name"`
	Category    string    `gorm:"not null;index;size:20" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"size:50" json:"icon"`
	Difficulty  string    `gorm:"default:'medium';size:20" json:"difficulty"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Game) TableName() string {
	return "games"
}

// ValidCategory reports whether c names a real subject category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryMathematics, CategoryScience, CategoryTechnology, CategoryEngineering:
		return true
	}
	return false
}

// ValidDifficulty reports whether d is a known difficulty level.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
