package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	calls    int
	snapshot Snapshot
}

func (s *stubSource) Snapshot(_ context.Context, playerIDs []string) (*Snapshot, map[string]PlayerView, error) {
	s.calls++
	views := make(map[string]PlayerView, len(playerIDs))
	for _, id := range playerIDs {
		views[id] = PlayerView{Nickname: id}
	}
	snap := s.snapshot
	return &snap, views, nil
}

func newTestHub(source SnapshotSource) *Hub {
	return NewHub(source, clockwork.NewFakeClock(), 500*time.Millisecond)
}

func receivePayload(t *testing.T, sub *Subscriber) Payload {
	t.Helper()
	select {
	case data, ok := <-sub.Messages():
		require.True(t, ok, "channel closed before a payload arrived")
		var payload Payload
		require.NoError(t, json.Unmarshal(data, &payload))
		return payload
	case <-time.After(time.Second):
		t.Fatal("no payload within a second")
		return Payload{}
	}
}

func TestTickDeliversPersonalizedPayloads(t *testing.T) {
	source := &stubSource{snapshot: Snapshot{Day: 100, TodayClicks: 7}}
	hub := newTestHub(source)

	alice := hub.Subscribe("alice")
	bob := hub.Subscribe("bob")
	defer hub.Unsubscribe(alice)
	defer hub.Unsubscribe(bob)

	hub.Tick(context.Background())

	got := receivePayload(t, alice)
	assert.Equal(t, 100, got.Day)
	assert.Equal(t, "alice", got.Player.Nickname)

	got = receivePayload(t, bob)
	assert.Equal(t, "bob", got.Player.Nickname, "each viewer gets their own fragment")
}

func TestTickWithZeroSubscribersIsNoop(t *testing.T) {
	source := &stubSource{}
	hub := newTestHub(source)

	hub.Tick(context.Background())
	assert.Zero(t, source.calls, "no snapshot work without viewers")
}

func TestUnsubscribeFreesSlotAndClosesChannel(t *testing.T) {
	hub := newTestHub(&stubSource{})

	sub := hub.Subscribe("alice")
	assert.Equal(t, 1, hub.Count())

	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.Count())

	_, ok := <-sub.Messages()
	assert.False(t, ok, "channel closed on unsubscribe")

	// Idempotent: transports defer Unsubscribe unconditionally.
	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.Count())
}

func TestSlowSubscriberIsDroppedWithoutDisturbingOthers(t *testing.T) {
	hub := newTestHub(&stubSource{})
	ctx := context.Background()

	slow := hub.Subscribe("slow")
	healthy := hub.Subscribe("healthy")

	// Fill slow's buffer without draining; healthy drains every tick.
	for i := 0; i < cap(slow.ch)+1; i++ {
		hub.Tick(ctx)
		receivePayload(t, healthy)
	}

	assert.Equal(t, 1, hub.Count(), "slow subscriber reclaimed")

	hub.Tick(ctx)
	receivePayload(t, healthy)
	assert.Equal(t, 1, hub.Count())
}

func TestKickTriggersImmediateTick(t *testing.T) {
	source := &stubSource{snapshot: Snapshot{Day: 42}}
	fc := clockwork.NewFakeClock()
	hub := NewHub(source, fc, time.Hour)

	sub := hub.Subscribe("alice")
	defer hub.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	hub.Kick()
	got := receivePayload(t, sub)
	assert.Equal(t, 42, got.Day, "kick delivers without waiting for the cadence")
}

func TestRunTicksOnCadence(t *testing.T) {
	source := &stubSource{snapshot: Snapshot{Day: 42}}
	fc := clockwork.NewFakeClock()
	hub := NewHub(source, fc, 500*time.Millisecond)

	sub := hub.Subscribe("alice")
	defer hub.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	fc.BlockUntil(1)
	fc.Advance(500 * time.Millisecond)
	got := receivePayload(t, sub)
	assert.Equal(t, 42, got.Day)
}
