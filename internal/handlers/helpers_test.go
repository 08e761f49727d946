package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/middleware"
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/models"
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/services"
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testTimeout = 5 * time.Second

type gameFixture struct {
	db      *gorm.DB
	fc      *clockwork.FakeClock
	clock   *services.ClockService
	limiter *services.RateLimitService
	ledger  *services.LedgerService
	players *services.PlayerService
	cycle   *services.DayCycleService
	hub     *ws.Hub
	router  *gin.Engine
}

func newGameFixture(t *testing.T) *gameFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.GameState{}, &models.Player{}, &models.Click{}))

	fc := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	clock := services.NewClockService(db, fc, 100, 24*time.Hour, testTimeout)
	limiter := services.NewRateLimitService(fc, 5, 10)
	ledger := services.NewLedgerService(db, fc, testTimeout)
	players := services.NewPlayerService(db, fc, testTimeout)
	board := services.NewLeaderboardService(db, fc, testTimeout)
	cycle := services.NewDayCycleService(db, fc, clock, ledger, testTimeout)
	snapshots := services.NewSnapshotService(clock, ledger, board, players)
	hub := ws.NewHub(snapshots, fc, 500*time.Millisecond)

	require.NoError(t, clock.Init(context.Background()))

	clickHandler := NewClickHandler(clock, limiter, ledger, hub)
	stateHandler := NewStateHandler(snapshots)
	nicknameHandler := NewNicknameHandler(players)
	leaderboardHandler := NewLeaderboardHandler(snapshots)
	dayHandler := NewDayHandler(cycle, hub)

	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.Identity())
	{
		api.POST("/click", clickHandler.Click)
		api.GET("/state", stateHandler.GetState)
		api.POST("/day-end", dayHandler.DayEnd)
		api.POST("/set-nickname", nicknameHandler.SetNickname)
		api.GET("/check-nickname", nicknameHandler.CheckNickname)
		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		api.GET("/me", nicknameHandler.Me)
	}

	return &gameFixture{
		db:      db,
		fc:      fc,
		clock:   clock,
		limiter: limiter,
		ledger:  ledger,
		players: players,
		cycle:   cycle,
		hub:     hub,
		router:  router,
	}
}

func (f *gameFixture) request(t *testing.T, method, path, body, playerID string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if playerID != "" {
		req.AddCookie(&http.Cookie{Name: middleware.PlayerCookie, Value: playerID})
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}
