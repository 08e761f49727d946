package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	StartDay          int
	DayLength         time.Duration
	MaxClicksPerSec   int
	BurstDepth        int
	TickInterval      time.Duration
	PollInterval      time.Duration
	StorageTimeout    time.Duration
	JWTSecret         string
	AdminPasswordHash string
	ResetGame         bool
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "clickercat"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		StartDay:          getEnvInt("START_DAY", 100),
		DayLength:         time.Duration(getEnvInt("DAY_LENGTH_SECONDS", 86400)) * time.Second,
		MaxClicksPerSec:   getEnvInt("MAX_CLICKS_PER_SECOND", 5),
		BurstDepth:        getEnvInt("BURST_DEPTH", 10),
		TickInterval:      time.Duration(getEnvInt("TICK_INTERVAL_MS", 500)) * time.Millisecond,
		PollInterval:      time.Duration(getEnvInt("POLL_INTERVAL_SECONDS", 1)) * time.Second,
		StorageTimeout:    time.Duration(getEnvInt("STORAGE_TIMEOUT_SECONDS", 5)) * time.Second,
		JWTSecret:         getEnv("JWT_SECRET", "super-secret-key-change-me"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		ResetGame:         getEnv("RESET_GAME", "") == "true",
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
