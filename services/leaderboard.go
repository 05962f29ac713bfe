// services/leaderboard.go - leaderboard snapshot aggregator
package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"stemquest/models"
)

// launchEpoch anchors the all-time window. Events cannot predate the
// platform launch.
var launchEpoch = time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)

// PeriodWindow computes the half-open [start, end) window for a period
// relative to asOf. Windows are UTC calendar windows; weeks start on
// Sunday.
func PeriodWindow(period string, asOf time.Time) (time.Time, time.Time, error) {
	t := asOf.UTC()
	dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	switch period {
	case models.PeriodDaily:
		return dayStart, dayStart.AddDate(0, 0, 1), nil
	case models.PeriodWeekly:
		weekStart := dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
		return weekStart, weekStart.AddDate(0, 0, 7), nil
	case models.PeriodMonthly:
		monthStart := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return monthStart, monthStart.AddDate(0, 1, 0), nil
	case models.PeriodAllTime:
		return launchEpoch, t, nil
	}
	return time.Time{}, time.Time{}, &ValidationError{Field: "period", Reason: "unknown period " + period}
}

// BuildEntries aggregates a window of play events into a ranked snapshot.
// Pure function of its inputs: group by user, sum and average scores,
// sort descending by (totalScore, averageScore) with ascending userId as
// the final tie-break, then assign dense 1-based ranks by position.
func BuildEntries(events []models.PlayEvent, category, period string, start, end time.Time) []models.LeaderboardEntry {
	type bucket struct {
		userID      uint
		totalScore  float64
		gamesPlayed int
		timeSeconds float64
	}

	buckets := make(map[uint]*bucket)
	order := []uint{}
	for _, e := range events {
		b, ok := buckets[e.UserID]
		if !ok {
			b = &bucket{userID: e.UserID}
			buckets[e.UserID] = b
			order = append(order, e.UserID)
		}
		b.totalScore += e.Score
		b.gamesPlayed++
		b.timeSeconds += e.TimeSpentSeconds
	}

	now := time.Now().UTC()
	entries := make([]models.LeaderboardEntry, 0, len(order))
	for _, userID := range order {
		b := buckets[userID]
		avg := round2(b.totalScore / float64(b.gamesPlayed))
		entries = append(entries, models.LeaderboardEntry{
			Category:         category,
			Period:           period,
			UserID:           b.userID,
			TotalScore:       b.totalScore,
			GamesPlayed:      b.gamesPlayed,
			AverageScore:     avg,
			TimeSpentMinutes: int(math.Round(b.timeSeconds / 60)),
			PeriodStart:      start,
			PeriodEnd:        end,
			LastUpdated:      now,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		if entries[i].AverageScore != entries[j].AverageScore {
			return entries[i].AverageScore > entries[j].AverageScore
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LeaderboardService rebuilds and serves snapshots. Rebuilds for
// different (category, period) keys run in parallel; rebuilds for the
// same key are serialized so readers never see an interleaved
// delete/insert.
type LeaderboardService struct {
	events PlayEventStore
	boards LeaderboardStore

	mu       sync.Mutex
	keyLocks map[string]*sync.Mutex
}

func NewLeaderboardService(events PlayEventStore, boards LeaderboardStore) *LeaderboardService {
	return &LeaderboardService{
		events:   events,
		boards:   boards,
		keyLocks: make(map[string]*sync.Mutex),
	}
}

func (s *LeaderboardService) keyLock(category, period string) *sync.Mutex {
	key := category + "/" + period
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.keyLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.keyLocks[key] = lock
	}
	return lock
}

// Rebuild recomputes the (category, period) snapshot from the raw event
// history as of asOf, and atomically replaces the stored entries.
func (s *LeaderboardService) Rebuild(category, period string, asOf time.Time) ([]models.LeaderboardEntry, error) {
	if category != models.CategoryOverall && !models.ValidCategory(category) {
		return nil, &ValidationError{Field: "category", Reason: "unknown category " + category}
	}

	start, end, err := PeriodWindow(period, asOf)
	if err != nil {
		return nil, err
	}

	lock := s.keyLock(category, period)
	lock.Lock()
	defer lock.Unlock()

	filter := category
	if category == models.CategoryOverall {
		filter = ""
	}
	events, err := s.events.QueryWindow(filter, start, end)
	if err != nil {
		return nil, fmt.Errorf("query window: %w", err)
	}

	entries := BuildEntries(events, category, period, start, end)
	if err := s.boards.ReplaceSnapshot(category, period, entries); err != nil {
		return nil, fmt.Errorf("replace snapshot: %w", err)
	}
	return entries, nil
}

// TopPlayers reads the first limit rows of the last-rebuilt snapshot.
func (s *LeaderboardService) TopPlayers(category, period string, limit int) ([]models.LeaderboardEntry, error) {
	return s.boards.TopN(category, period, limit)
}

// UserRank returns the user's snapshot entry, or nil if the user has no
// qualifying activity in the period. Unranked is not an error.
func (s *LeaderboardService) UserRank(userID uint, category, period string) (*models.LeaderboardEntry, error) {
	entry, err := s.boards.RankOf(userID, category, period)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}
