package models

import "time"

// Player is created lazily on a participant's first contact. Nickname stays
// NULL until the player claims one; only nicknamed players appear on the
// leaderboard.
type Player struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Nickname    *string    `gorm:"size:30;uniqueIndex" json:"nickname,omitempty"`
	TotalClicks int        `gorm:"not null;default:0" json:"total_clicks"`
	Streak      int        `gorm:"not null;default:0" json:"streak"`
	DaysPlayed  int        `gorm:"not null;default:0" json:"days_played"`
	FirstSeen   time.Time  `json:"first_seen"`
	LastClickAt *time.Time `json:"last_click_at,omitempty"`
}
