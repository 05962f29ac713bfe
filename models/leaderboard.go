// models/leaderboard.go
package models

import "time"

// Leaderboard periods. Windows are computed on the UTC calendar; weeks
// start on Sunday.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAllTime = "all-time"
)

// LeaderboardEntry is one row of a rebuilt (category, period) snapshot.
// Entries are fully derived from play_events: every rebuild deletes and
// regenerates the whole snapshot, so rows here are safe to drop.
type LeaderboardEntry struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Category string `gorm:"not null;size:20;uniqueIndex:idx_board_key" json:"category"`
	Period   string `gorm:"not null;size:20;uniqueIndex:idx_board_key" json:"period"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_board_key;index" json:"user_id"`
	User     *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`

	TotalScore       float64 `gorm:"default:0" json:"total_score"`
	GamesPlayed      int     `gorm:"default:0" json:"games_played"`
	AverageScore     float64 `gorm:"default:0" json:"average_score"`
	TimeSpentMinutes int     `gorm:"default:0" json:"time_spent_minutes"`
	Rank             int     `gorm:"not null;index" json:"rank"`

	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	LastUpdated time.Time `json:"last_updated"`
}

func (LeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}

// ValidPeriod reports whether p names a supported leaderboard period.
func ValidPeriod(p string) bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAllTime:
		return true
	}
	return false
}
