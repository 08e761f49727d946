package models

import "time"

// Click is append-only. Day is the day number the click counted toward at
// insertion time.
type Click struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PlayerID  string    `gorm:"size:36;not null;index" json:"player_id"`
	Day       int       `gorm:"not null;index" json:"day"`
	ClickedAt time.Time `gorm:"not null" json:"clicked_at"`
}
