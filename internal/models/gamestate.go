package models

import "time"

// GameState is the singleton row holding the day-cycle state. Value is the
// current day number and counts DOWN from the configured start day; reaching
// zero completes the game. TimestampValue is the instant the current day
// began.
type GameState struct {
	Key            string    `gorm:"primaryKey;size:32" json:"key"`
	Value          int       `gorm:"not null" json:"value"`
	TimestampValue time.Time `gorm:"not null" json:"timestamp_value"`
	Status         string    `gorm:"size:20;not null;default:'running'" json:"status"`
}

const (
	GameStateKey = "current_day"

	GameStatusRunning  = "running"
	GameStatusLost     = "lost"
	GameStatusComplete = "complete"
)
