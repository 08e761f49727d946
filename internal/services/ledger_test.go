package services

import (
	"context"
	"testing"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerCountMatchesAppends(t *testing.T) {
	db := newTestDB(t)
	fc := newTestClock(t)
	ledger := NewLedgerService(db, fc, testTimeout)
	ctx := context.Background()

	seedClicks(t, ledger, fc, "p1", 100, 3)
	seedClicks(t, ledger, fc, "p2", 100, 2)
	seedClicks(t, ledger, fc, "p1", 99, 1)

	count, err := ledger.CountForDay(ctx, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)

	count, err = ledger.CountForDay(ctx, 99)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = ledger.CountForDay(ctx, 42)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	count, err = ledger.CountForPlayer(ctx, "p1", 100)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestLedgerDistinctPlayers(t *testing.T) {
	db := newTestDB(t)
	fc := newTestClock(t)
	ledger := NewLedgerService(db, fc, testTimeout)

	seedClicks(t, ledger, fc, "p1", 100, 3)
	seedClicks(t, ledger, fc, "p2", 100, 1)

	ids, err := ledger.DistinctPlayers(context.Background(), 100)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids)
}

func TestLedgerAppendUpdatesLifetimeTotals(t *testing.T) {
	db := newTestDB(t)
	fc := newTestClock(t)
	ledger := NewLedgerService(db, fc, testTimeout)

	seedClicks(t, ledger, fc, "p1", 100, 3)
	seedClicks(t, ledger, fc, "p1", 99, 1)

	var player models.Player
	require.NoError(t, db.First(&player, "id = ?", "p1").Error)
	assert.Equal(t, 4, player.TotalClicks)
	require.NotNil(t, player.LastClickAt)
	assert.False(t, player.FirstSeen.IsZero())
}

func TestLedgerTruncate(t *testing.T) {
	db := newTestDB(t)
	fc := newTestClock(t)
	ledger := NewLedgerService(db, fc, testTimeout)
	ctx := context.Background()

	seedClicks(t, ledger, fc, "p1", 100, 3)
	require.NoError(t, ledger.Truncate(ctx))

	count, err := ledger.CountForDay(ctx, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
