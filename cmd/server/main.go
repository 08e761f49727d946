package main

import (
	"context"
	"log"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/config"
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/database"
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/handlers"
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/middleware"
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/services"
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/ws"

	_ "github.com/dhbrrjudrvrjdhfv/ClickerCat/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           ClickerCat API
// @version         1.0
// @description     Shared click-quota game: all clicks pool into one global counter, and the day only advances when today's total reaches yesterday's.
// @host            localhost:8080
// @BasePath        /

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	clock := clockwork.NewRealClock()

	clockService := services.NewClockService(db, clock, cfg.StartDay, cfg.DayLength, cfg.StorageTimeout)
	limiter := services.NewRateLimitService(clock, cfg.MaxClicksPerSec, cfg.BurstDepth)
	ledger := services.NewLedgerService(db, clock, cfg.StorageTimeout)
	players := services.NewPlayerService(db, clock, cfg.StorageTimeout)
	board := services.NewLeaderboardService(db, clock, cfg.StorageTimeout)
	cycle := services.NewDayCycleService(db, clock, clockService, ledger, cfg.StorageTimeout)
	snapshots := services.NewSnapshotService(clockService, ledger, board, players)
	admin := services.NewAdminService(cfg.JWTSecret, cfg.AdminPasswordHash)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := clockService.Init(ctx); err != nil {
		log.Fatalf("failed to seed game state: %v", err)
	}
	if cfg.ResetGame {
		if err := ledger.Truncate(ctx); err != nil {
			log.Fatalf("failed to reset ledger: %v", err)
		}
		if err := players.ResetStats(ctx); err != nil {
			log.Fatalf("failed to reset player stats: %v", err)
		}
		if err := clockService.Reset(ctx); err != nil {
			log.Fatalf("failed to reset game state: %v", err)
		}
		log.Println("game reset on startup (RESET_GAME=true)")
	}

	hub := ws.NewHub(snapshots, clock, cfg.TickInterval)

	clickHandler := handlers.NewClickHandler(clockService, limiter, ledger, hub)
	stateHandler := handlers.NewStateHandler(snapshots)
	liveHandler := handlers.NewLiveHandler(hub)
	nicknameHandler := handlers.NewNicknameHandler(players)
	leaderboardHandler := handlers.NewLeaderboardHandler(snapshots)
	dayHandler := handlers.NewDayHandler(cycle, hub)
	adminHandler := handlers.NewAdminHandler(admin, clockService, cycle, ledger, players, limiter, hub)

	go cycle.RunPoller(ctx, cfg.PollInterval)
	go hub.Run(ctx)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/live", middleware.Identity(), liveHandler.LiveWebSocket)

	api := r.Group("/api")
	api.Use(middleware.Identity())
	{
		api.POST("/click", clickHandler.Click)
		api.GET("/state", stateHandler.GetState)
		api.GET("/live", liveHandler.Live)
		api.POST("/day-end", dayHandler.DayEnd)
		api.POST("/set-nickname", nicknameHandler.SetNickname)
		api.GET("/check-nickname", nicknameHandler.CheckNickname)
		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		api.GET("/me", nicknameHandler.Me)

		if admin.Enabled() {
			adm := api.Group("/admin")
			{
				adm.POST("/login", adminHandler.Login)

				gated := adm.Group("")
				gated.Use(middleware.AdminAuth(admin))
				{
					gated.POST("/force-midnight", adminHandler.ForceMidnight)
					gated.POST("/skip-day", adminHandler.SkipDay)
					gated.POST("/reset", adminHandler.Reset)
				}
			}
		} else {
			log.Println("ADMIN_PASSWORD_HASH not set, admin endpoints disabled")
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
