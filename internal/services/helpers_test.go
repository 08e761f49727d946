package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/models"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testTimeout = 5 * time.Second

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database per test: gorm's pool hands out several
	// connections and they all need to see the same in-memory schema.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.GameState{}, &models.Player{}, &models.Click{}))
	return db
}

func newTestClock(t *testing.T) *clockwork.FakeClock {
	t.Helper()
	return clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

// seedClicks appends n admitted clicks for the player on the given day,
// advancing the fake clock a little between appends.
func seedClicks(t *testing.T, ledger *LedgerService, fc *clockwork.FakeClock, playerID string, day, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, ledger.Append(context.Background(), playerID, day))
		fc.Advance(10 * time.Millisecond)
	}
}
