package services

import (
	"context"
	"testing"
	"time"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockInitAndRead(t *testing.T) {
	db := newTestDB(t)
	fc := newTestClock(t)
	clock := NewClockService(db, fc, 100, 24*time.Hour, testTimeout)
	ctx := context.Background()

	require.NoError(t, clock.Init(ctx))
	// Init is idempotent across restarts.
	require.NoError(t, clock.Init(ctx))

	state := clock.Read(ctx)
	assert.Equal(t, 100, state.Day)
	assert.Equal(t, models.GameStatusRunning, state.Status)
	assert.Equal(t, 86400, clock.SecondsLeft(state))
}

func TestClockReadSafeDefaultWhenStorageFails(t *testing.T) {
	db := newTestDB(t)
	fc := newTestClock(t)
	clock := NewClockService(db, fc, 100, 24*time.Hour, testTimeout)

	require.NoError(t, db.Migrator().DropTable(&models.GameState{}))

	state := clock.Read(context.Background())
	assert.Equal(t, 100, state.Day)
	assert.Equal(t, models.GameStatusRunning, state.Status)
	assert.Equal(t, 86400, clock.SecondsLeft(state))
}

func TestClockAdvanceIsCompareAndSwap(t *testing.T) {
	db := newTestDB(t)
	fc := newTestClock(t)
	clock := NewClockService(db, fc, 100, 24*time.Hour, testTimeout)
	ctx := context.Background()
	require.NoError(t, clock.Init(ctx))

	require.NoError(t, clock.advance(db, 100, 99, fc.Now(), models.GameStatusRunning))

	// A second trigger still holding the old day number must lose.
	err := clock.advance(db, 100, 98, fc.Now(), models.GameStatusRunning)
	assert.ErrorIs(t, err, ErrConflict)

	state := clock.Read(ctx)
	assert.Equal(t, 99, state.Day)
}

func TestClockMarkLostGuarded(t *testing.T) {
	db := newTestDB(t)
	fc := newTestClock(t)
	clock := NewClockService(db, fc, 100, 24*time.Hour, testTimeout)
	ctx := context.Background()
	require.NoError(t, clock.Init(ctx))

	require.NoError(t, clock.markLost(db, 100))
	assert.ErrorIs(t, clock.markLost(db, 100), ErrConflict)

	state := clock.Read(ctx)
	assert.Equal(t, models.GameStatusLost, state.Status)
}

func TestClockForceNear(t *testing.T) {
	db := newTestDB(t)
	fc := newTestClock(t)
	clock := NewClockService(db, fc, 100, 24*time.Hour, testTimeout)
	ctx := context.Background()
	require.NoError(t, clock.Init(ctx))

	require.NoError(t, clock.ForceNear(ctx, 3))

	state := clock.Read(ctx)
	assert.Equal(t, 3, clock.SecondsLeft(state))
	assert.Equal(t, 100, state.Day, "shortcut perturbs the clock, never the day")
}

func TestClockReset(t *testing.T) {
	db := newTestDB(t)
	fc := newTestClock(t)
	clock := NewClockService(db, fc, 100, 24*time.Hour, testTimeout)
	ctx := context.Background()
	require.NoError(t, clock.Init(ctx))

	require.NoError(t, clock.advance(db, 100, 99, fc.Now(), models.GameStatusRunning))
	require.NoError(t, clock.markLost(db, 99))

	require.NoError(t, clock.Reset(ctx))
	state := clock.Read(ctx)
	assert.Equal(t, 100, state.Day)
	assert.Equal(t, models.GameStatusRunning, state.Status)
	assert.Equal(t, 86400, clock.SecondsLeft(state))
}
