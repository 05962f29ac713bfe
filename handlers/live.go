// handlers/live.go - websocket leaderboard feed
package handlers

import (
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"stemquest/models"
)

type snapshotUpdate struct {
	Type     string                    `json:"type"`
	Category string                    `json:"category"`
	Period   string                    `json:"period"`
	Entries  []models.LeaderboardEntry `json:"entries"`
}

var liveFeed = struct {
	mu   sync.RWMutex
	subs map[*websocket.Conn]chan snapshotUpdate
}{subs: make(map[*websocket.Conn]chan snapshotUpdate)}

// UpgradeLeaderboardFeed gates the websocket upgrade.
func UpgradeLeaderboardFeed(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// LeaderboardFeed streams snapshot updates to connected dashboards.
// Each rebuild pushes the fresh entry set to every subscriber.
func LeaderboardFeed() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		updates := make(chan snapshotUpdate, 8)

		liveFeed.mu.Lock()
		liveFeed.subs[conn] = updates
		liveFeed.mu.Unlock()

		defer func() {
			liveFeed.mu.Lock()
			delete(liveFeed.subs, conn)
			liveFeed.mu.Unlock()
			conn.Close()
		}()

		// Drain reads so pings and close frames are handled
		done := make(chan struct{})
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					close(done)
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case update := <-updates:
				if err := conn.WriteJSON(update); err != nil {
					return
				}
			}
		}
	})
}

// broadcastSnapshot fans a rebuilt snapshot out to subscribers. Slow
// subscribers are skipped rather than blocking the rebuild path.
func broadcastSnapshot(category, period string, entries []models.LeaderboardEntry) {
	liveFeed.mu.RLock()
	defer liveFeed.mu.RUnlock()

	if len(liveFeed.subs) == 0 {
		return
	}

	update := snapshotUpdate{
		Type:     "leaderboard_update",
		Category: category,
		Period:   period,
		Entries:  entries,
	}
	for conn, ch := range liveFeed.subs {
		select {
		case ch <- update:
		default:
			log.Printf("Dropping leaderboard update for slow subscriber %v", conn.RemoteAddr())
		}
	}
}
