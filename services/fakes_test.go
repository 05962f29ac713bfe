package services

import (
	"sort"
	"time"

	"stemquest/models"
)

// In-memory store fakes implementing the contracts in stores.go.

type fakeEventStore struct {
	events []models.PlayEvent
	err    error
}

func (s *fakeEventStore) Append(event *models.PlayEvent) error {
	if s.err != nil {
		return s.err
	}
	event.ID = uint(len(s.events) + 1)
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	s.events = append(s.events, *event)
	return nil
}

func (s *fakeEventStore) QueryWindow(category string, start, end time.Time) ([]models.PlayEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.PlayEvent
	for _, e := range s.events {
		if e.CreatedAt.Before(start) || !e.CreatedAt.Before(end) {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeAwardStore struct {
	awards    []models.AchievementAward
	listErr   error
	insertErr error
}

func (s *fakeAwardStore) ListByUser(userID uint) ([]models.AchievementAward, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.AchievementAward
	for _, a := range s.awards {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAwardStore) InsertAll(awards []models.AchievementAward) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	for _, a := range awards {
		for _, existing := range s.awards {
			if existing.UserID == a.UserID && existing.Type == a.Type && existing.Discriminator == a.Discriminator {
				return ErrConflict
			}
		}
	}
	s.awards = append(s.awards, awards...)
	return nil
}

type fakeBoardStore struct {
	snapshots  map[string][]models.LeaderboardEntry
	replaceErr error
}

func newFakeBoardStore() *fakeBoardStore {
	return &fakeBoardStore{snapshots: make(map[string][]models.LeaderboardEntry)}
}

func (s *fakeBoardStore) key(category, period string) string {
	return category + "/" + period
}

func (s *fakeBoardStore) ReplaceSnapshot(category, period string, entries []models.LeaderboardEntry) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	copied := make([]models.LeaderboardEntry, len(entries))
	copy(copied, entries)
	sort.Slice(copied, func(i, j int) bool { return copied[i].Rank < copied[j].Rank })
	s.snapshots[s.key(category, period)] = copied
	return nil
}

func (s *fakeBoardStore) TopN(category, period string, limit int) ([]models.LeaderboardEntry, error) {
	entries := s.snapshots[s.key(category, period)]
	if limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *fakeBoardStore) RankOf(userID uint, category, period string) (*models.LeaderboardEntry, error) {
	for _, e := range s.snapshots[s.key(category, period)] {
		if e.UserID == userID {
			entry := e
			return &entry, nil
		}
	}
	return nil, ErrNotFound
}
