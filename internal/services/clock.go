package services

import (
	"context"
	"log"
	"time"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/models"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DayState is a consistent view of the day-cycle singleton. Reads observe
// either the pre- or post-state of a transition, never a torn combination.
type DayState struct {
	Day      int       `json:"day"`
	DayStart time.Time `json:"day_start"`
	Status   string    `json:"status"`
}

type ClockService struct {
	db        *gorm.DB
	clock     clockwork.Clock
	startDay  int
	dayLength time.Duration
	timeout   time.Duration
}

func NewClockService(db *gorm.DB, clock clockwork.Clock, startDay int, dayLength, timeout time.Duration) *ClockService {
	return &ClockService{db: db, clock: clock, startDay: startDay, dayLength: dayLength, timeout: timeout}
}

// Init seeds the singleton row when absent. Called once at startup; a write
// failure here is fatal, unlike reads during play.
func (s *ClockService) Init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	state := models.GameState{
		Key:            models.GameStateKey,
		Value:          s.startDay,
		TimestampValue: s.clock.Now(),
		Status:         models.GameStatusRunning,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&state).Error
}

// Read returns the current day state. If storage is unavailable it returns a
// fresh day with full time remaining rather than failing the caller.
func (s *ClockService) Read(ctx context.Context) DayState {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var state models.GameState
	err := s.db.WithContext(ctx).First(&state, "key = ?", models.GameStateKey).Error
	if err != nil {
		log.Printf("clock: read failed, assuming fresh day: %v", err)
		return DayState{Day: s.startDay, DayStart: s.clock.Now(), Status: models.GameStatusRunning}
	}
	return DayState{Day: state.Value, DayStart: state.TimestampValue, Status: state.Status}
}

// SecondsLeft derives the remaining wall-clock seconds of the given state's
// day, floored at zero.
func (s *ClockService) SecondsLeft(state DayState) int {
	elapsed := s.clock.Now().Sub(state.DayStart)
	left := int((s.dayLength - elapsed) / time.Second)
	if left < 0 {
		return 0
	}
	return left
}

// ForceNear rewrites the day start so that SecondsLeft becomes roughly the
// given value. Administrative shortcut for accelerated testing; it never
// advances the day itself, the periodic evaluation picks it up.
func (s *ClockService) ForceNear(ctx context.Context, secondsLeft int) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	newStart := s.clock.Now().Add(-s.dayLength + time.Duration(secondsLeft)*time.Second)
	return s.db.WithContext(ctx).Model(&models.GameState{}).
		Where("key = ?", models.GameStateKey).
		Update("timestamp_value", newStart).Error
}

// Reset reinitializes the day cycle to the configured start day.
func (s *ClockService) Reset(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.db.WithContext(ctx).Model(&models.GameState{}).
		Where("key = ?", models.GameStateKey).
		Updates(map[string]interface{}{
			"value":           s.startDay,
			"timestamp_value": s.clock.Now(),
			"status":          models.GameStatusRunning,
		}).Error
}

// advance performs the guarded day transition on tx. The WHERE clause is the
// compare-and-swap: it only applies when the row still holds fromDay in the
// running state, so concurrent triggers cannot double-advance.
func (s *ClockService) advance(tx *gorm.DB, fromDay, toDay int, newStart time.Time, newStatus string) error {
	res := tx.Model(&models.GameState{}).
		Where("key = ? AND value = ? AND status = ?", models.GameStateKey, fromDay, models.GameStatusRunning).
		Updates(map[string]interface{}{
			"value":           toDay,
			"timestamp_value": newStart,
			"status":          newStatus,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// markLost flags the terminal loss state, guarded the same way as advance.
func (s *ClockService) markLost(tx *gorm.DB, fromDay int) error {
	res := tx.Model(&models.GameState{}).
		Where("key = ? AND value = ? AND status = ?", models.GameStateKey, fromDay, models.GameStatusRunning).
		Update("status", models.GameStatusLost)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
