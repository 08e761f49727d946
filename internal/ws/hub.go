package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Snapshot is the shared part of a broadcast payload, computed once per tick
// and identical for every viewer.
type Snapshot struct {
	Day             int                `json:"day"`
	Status          string             `json:"status"`
	TodayClicks     int64              `json:"todayClicks"`
	YesterdayClicks int64              `json:"yesterdayClicks"`
	Remaining       int64              `json:"remaining"`
	SecondsLeft     int                `json:"secondsLeft"`
	OnlineCount     int64              `json:"onlineCount"`
	Leaderboard     []LeaderboardEntry `json:"leaderboard"`
}

type LeaderboardEntry struct {
	Nickname string `json:"nickname"`
	Clicks   int64  `json:"clicks"`
	Online   bool   `json:"online"`
}

// PlayerView is the personalized fragment. Rank 0 means unranked: players
// without a nickname never hold a leaderboard position.
type PlayerView struct {
	Nickname string `json:"nickname"`
	Clicks   int64  `json:"clicks"`
	Rank     int    `json:"rank"`
}

type Payload struct {
	Snapshot
	Player PlayerView `json:"player"`
}

// SnapshotSource computes one shared snapshot plus a personalized view per
// requested player, in a single ranking pass.
type SnapshotSource interface {
	Snapshot(ctx context.Context, playerIDs []string) (*Snapshot, map[string]PlayerView, error)
}

// Subscriber is one connected viewer. Payloads arrive on a buffered channel;
// the transport (SSE or websocket) drains it and the hub closes it when the
// subscriber is dropped.
type Subscriber struct {
	PlayerID string
	ch       chan []byte
}

func (s *Subscriber) Messages() <-chan []byte {
	return s.ch
}

// Hub fans personalized snapshots out to all subscribers at a fixed cadence.
// It never blocks the click path: state-changing operations call Kick and the
// periodic tick is the catch-all.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]bool

	source   SnapshotSource
	clock    clockwork.Clock
	interval time.Duration
	kick     chan struct{}
}

func NewHub(source SnapshotSource, clock clockwork.Clock, interval time.Duration) *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]bool),
		source:      source,
		clock:       clock,
		interval:    interval,
		kick:        make(chan struct{}, 1),
	}
}

func (h *Hub) Subscribe(playerID string) *Subscriber {
	sub := &Subscriber{PlayerID: playerID, ch: make(chan []byte, 4)}

	h.mu.Lock()
	h.subscribers[sub] = true
	total := len(h.subscribers)
	h.mu.Unlock()

	log.Printf("ws: client subscribed (total: %d)", total)
	return sub
}

// Unsubscribe is idempotent; the transport defers it even when the hub has
// already dropped the subscriber for a failed write.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[sub] {
		delete(h.subscribers, sub)
		close(sub.ch)
		log.Printf("ws: client unsubscribed (total: %d)", len(h.subscribers))
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Kick requests an immediate tick without waiting for the cadence. It never
// blocks; a pending kick is enough.
func (h *Hub) Kick() {
	select {
	case h.kick <- struct{}{}:
	default:
	}
}

// Run drives the broadcast loop until ctx is cancelled. Ticks execute
// sequentially on this goroutine, so a tick can never overlap itself.
func (h *Hub) Run(ctx context.Context) {
	ticker := h.clock.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			h.Tick(ctx)
		case <-h.kick:
			h.Tick(ctx)
		}
	}
}

// Tick computes one snapshot and delivers it to every subscriber. A
// subscriber that cannot accept the payload is dropped without disturbing
// delivery to the others.
func (h *Hub) Tick(ctx context.Context) {
	h.mu.RLock()
	subs := make([]*Subscriber, 0, len(h.subscribers))
	playerIDs := make([]string, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
		playerIDs = append(playerIDs, sub.PlayerID)
	}
	h.mu.RUnlock()

	if len(subs) == 0 {
		return
	}

	shared, views, err := h.source.Snapshot(ctx, playerIDs)
	if err != nil {
		log.Printf("ws: snapshot failed, skipping tick: %v", err)
		return
	}

	for _, sub := range subs {
		payload := Payload{Snapshot: *shared, Player: views[sub.PlayerID]}
		data, err := json.Marshal(payload)
		if err != nil {
			log.Printf("ws: marshal error: %v", err)
			return
		}
		select {
		case sub.ch <- data:
		default:
			// Slow or gone; reclaim the slot.
			h.Unsubscribe(sub)
		}
	}
}
