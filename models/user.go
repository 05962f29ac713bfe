// models/user.go
package models

import (
	"time"
)

// User roles.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	Avatar      string  `json:"avatar"`
	Role        string  `gorm:"default:'student';size:20" json:"role"`
	Grade       string  `gorm:"size:20" json:"grade"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`
	IsBanned    bool    `gorm:"default:false" json:"is_banned"`

	// Lifetime counters, denormalized for the profile dashboard. The
	// leaderboard and achievement engines never read these; play_events
	// is the source of truth.
	TotalGames int `gorm:"default:0" json:"total_games"`
	TotalScore int `gorm:"default:0" json:"total_score"`
	BestStreak int `gorm:"default:0" json:"best_streak"`

	// Timestamps
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    time.Time  `json:"last_login"`
	LastActivity *time.Time `json:"last_activity,omitempty"`

	// Relationships
	PlayEvents   []PlayEvent        `gorm:"foreignKey:UserID" json:"play_events,omitempty"`
	Achievements []AchievementAward `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
}

func (User) TableName() string {
	return "users"
}
