package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stemquest/models"
)

func TestPeriodWindow(t *testing.T) {
	// Wednesday, 2026-03-18 15:42 UTC
	asOf := time.Date(2026, time.March, 18, 15, 42, 7, 0, time.UTC)

	tests := []struct {
		period    string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			period:    models.PeriodDaily,
			wantStart: time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, time.March, 19, 0, 0, 0, 0, time.UTC),
		},
		{
			// week starts on Sunday
			period:    models.PeriodWeekly,
			wantStart: time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, time.March, 22, 0, 0, 0, 0, time.UTC),
		},
		{
			period:    models.PeriodMonthly,
			wantStart: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			period:    models.PeriodAllTime,
			wantStart: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   asOf,
		},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			start, end, err := PeriodWindow(tt.period, asOf)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestPeriodWindowOnSunday(t *testing.T) {
	// A Sunday is already the start of its own week
	asOf := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
	start, _, err := PeriodWindow(models.PeriodWeekly, asOf)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), start)
}

func TestPeriodWindowUnknownPeriod(t *testing.T) {
	_, _, err := PeriodWindow("fortnightly", time.Now())
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func event(userID uint, category string, score float64, createdAt time.Time) models.PlayEvent {
	return models.PlayEvent{
		UserID:           userID,
		GameID:           "math-blitz",
		Category:         category,
		Score:            score,
		MaxScore:         100,
		TotalQuestions:   10,
		TimeSpentSeconds: 60,
		CreatedAt:        createdAt,
	}
}

func TestBuildEntriesScenario(t *testing.T) {
	asOf := time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC)
	start, end, err := PeriodWindow(models.PeriodWeekly, asOf)
	require.NoError(t, err)

	inWindow := start.Add(6 * time.Hour)
	events := []models.PlayEvent{
		event(1, models.CategoryMathematics, 10, inWindow),
		event(1, models.CategoryMathematics, 20, inWindow.Add(time.Hour)),
		event(1, models.CategoryMathematics, 30, inWindow.Add(2*time.Hour)),
		event(2, models.CategoryMathematics, 25, inWindow.Add(3*time.Hour)),
	}

	entries := BuildEntries(events, models.CategoryMathematics, models.PeriodWeekly, start, end)
	require.Len(t, entries, 2)

	assert.Equal(t, uint(1), entries[0].UserID)
	assert.Equal(t, float64(60), entries[0].TotalScore)
	assert.Equal(t, 3, entries[0].GamesPlayed)
	assert.Equal(t, float64(20), entries[0].AverageScore)
	assert.Equal(t, 3, entries[0].TimeSpentMinutes)
	assert.Equal(t, 1, entries[0].Rank)

	assert.Equal(t, uint(2), entries[1].UserID)
	assert.Equal(t, float64(25), entries[1].TotalScore)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestBuildEntriesRankContiguity(t *testing.T) {
	now := time.Now().UTC()
	start, end := now.Add(-time.Hour), now.Add(time.Hour)

	// Users 3 and 4 tie on totalScore and averageScore
	events := []models.PlayEvent{
		event(4, models.CategoryScience, 50, now),
		event(3, models.CategoryScience, 50, now),
		event(1, models.CategoryScience, 90, now),
		event(2, models.CategoryScience, 70, now),
	}

	entries := BuildEntries(events, models.CategoryScience, models.PeriodDaily, start, end)
	require.Len(t, entries, 4)

	// Ranks are exactly 1..N, dense, no gaps even on ties
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}

	// Full ties fall back to ascending userId
	assert.Equal(t, uint(3), entries[2].UserID)
	assert.Equal(t, uint(4), entries[3].UserID)
}

func TestBuildEntriesAverageScoreTieBreak(t *testing.T) {
	now := time.Now().UTC()
	start, end := now.Add(-time.Hour), now.Add(time.Hour)

	// Same total (60): user 1 in three games (avg 20), user 2 in two (avg 30)
	events := []models.PlayEvent{
		event(1, models.CategoryScience, 10, now),
		event(1, models.CategoryScience, 20, now),
		event(1, models.CategoryScience, 30, now),
		event(2, models.CategoryScience, 25, now),
		event(2, models.CategoryScience, 35, now),
	}

	entries := BuildEntries(events, models.CategoryScience, models.PeriodDaily, start, end)
	require.Len(t, entries, 2)
	assert.Equal(t, uint(2), entries[0].UserID)
	assert.Equal(t, float64(30), entries[0].AverageScore)
	assert.Equal(t, 1, entries[0].Rank)
}

func TestBuildEntriesAverageRounding(t *testing.T) {
	now := time.Now().UTC()
	start, end := now.Add(-time.Hour), now.Add(time.Hour)

	events := []models.PlayEvent{
		event(1, models.CategoryScience, 10, now),
		event(1, models.CategoryScience, 10, now),
		event(1, models.CategoryScience, 11, now),
	}

	entries := BuildEntries(events, models.CategoryScience, models.PeriodDaily, start, end)
	require.Len(t, entries, 1)
	assert.Equal(t, 10.33, entries[0].AverageScore)
}

func TestRebuildWindowBoundaries(t *testing.T) {
	asOf := time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC)
	start, end, err := PeriodWindow(models.PeriodDaily, asOf)
	require.NoError(t, err)

	store := &fakeEventStore{events: []models.PlayEvent{
		event(1, models.CategoryMathematics, 10, start),                      // exactly periodStart: included
		event(2, models.CategoryMathematics, 20, end),                       // exactly periodEnd: excluded
		event(3, models.CategoryMathematics, 30, start.Add(-time.Second)),   // before window
		event(4, models.CategoryMathematics, 40, end.Add(-time.Nanosecond)), // last instant inside
	}}
	boards := newFakeBoardStore()
	svc := NewLeaderboardService(store, boards)

	entries, err := svc.Rebuild(models.CategoryMathematics, models.PeriodDaily, asOf)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint(4), entries[0].UserID)
	assert.Equal(t, uint(1), entries[1].UserID)
}

func TestRebuildOverallSpansCategories(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeEventStore{events: []models.PlayEvent{
		event(1, models.CategoryMathematics, 10, now),
		event(1, models.CategoryScience, 15, now),
		event(2, models.CategoryEngineering, 20, now),
	}}
	boards := newFakeBoardStore()
	svc := NewLeaderboardService(store, boards)

	entries, err := svc.Rebuild(models.CategoryOverall, models.PeriodDaily, now)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, float64(25), entries[0].TotalScore)

	// Category boards only see their own events
	entries, err = svc.Rebuild(models.CategoryScience, models.PeriodDaily, now)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, float64(15), entries[0].TotalScore)
}

func TestRebuildReplacesPriorSnapshot(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeEventStore{events: []models.PlayEvent{
		event(1, models.CategoryMathematics, 10, now),
	}}
	boards := newFakeBoardStore()
	svc := NewLeaderboardService(store, boards)

	_, err := svc.Rebuild(models.CategoryMathematics, models.PeriodDaily, now)
	require.NoError(t, err)

	store.events = append(store.events, event(2, models.CategoryMathematics, 50, now))
	entries, err := svc.Rebuild(models.CategoryMathematics, models.PeriodDaily, now)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	top, err := svc.TopPlayers(models.CategoryMathematics, models.PeriodDaily, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, uint(2), top[0].UserID)
}

func TestRebuildUnknownCategory(t *testing.T) {
	svc := NewLeaderboardService(&fakeEventStore{}, newFakeBoardStore())
	_, err := svc.Rebuild("astrology", models.PeriodDaily, time.Now())
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestRebuildSnapshotWriteFailure(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeEventStore{events: []models.PlayEvent{
		event(1, models.CategoryMathematics, 10, now),
	}}
	boards := newFakeBoardStore()
	boards.replaceErr = ErrStoreUnavailable
	svc := NewLeaderboardService(store, boards)

	_, err := svc.Rebuild(models.CategoryMathematics, models.PeriodDaily, now)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestUserRankUnranked(t *testing.T) {
	svc := NewLeaderboardService(&fakeEventStore{}, newFakeBoardStore())
	_, err := svc.Rebuild(models.CategoryMathematics, models.PeriodDaily, time.Now())
	require.NoError(t, err)

	entry, err := svc.UserRank(42, models.CategoryMathematics, models.PeriodDaily)
	require.NoError(t, err)
	assert.Nil(t, entry)
}
