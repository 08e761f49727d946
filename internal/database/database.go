package database

import (
	"fmt"
	"log"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/config"
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	// Deployments that predate the loss state have no status column; add it
	// before AutoMigrate so existing rows pick up the running default.
	db.Exec(`DO $$
	BEGIN
		IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'game_states')
		   AND NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'game_states' AND column_name = 'status')
		THEN
			ALTER TABLE game_states ADD COLUMN status varchar(20) NOT NULL DEFAULT 'running';
		END IF;
	END $$;`)

	err := db.AutoMigrate(
		&models.GameState{},
		&models.Player{},
		&models.Click{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}
	log.Println("database migrated")
}
