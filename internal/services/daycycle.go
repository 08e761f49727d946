package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/models"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// Outcome is the result of one evaluation of the day-end rule.
type Outcome struct {
	Won             bool  `json:"won"`
	Lost            bool  `json:"lost"`
	Complete        bool  `json:"complete"`
	NewDay          int   `json:"new_day"`
	TodayClicks     int64 `json:"today_clicks"`
	YesterdayClicks int64 `json:"yesterday_clicks"`
}

// DayCycleService is the state machine that advances or halts the game. The
// pass condition compares today's volume against yesterday's, so the bar
// scales with actual participation. A day with no yesterday baseline
// trivially wins; that is the intended first-day rule, not an accident.
type DayCycleService struct {
	mu       sync.Mutex
	db       *gorm.DB
	clock    clockwork.Clock
	clockSvc *ClockService
	ledger   *LedgerService
	timeout  time.Duration

	// halted latches when an invariant violation is detected; automatic
	// transitions stop until an administrative reset.
	halted atomic.Bool
}

func NewDayCycleService(db *gorm.DB, clock clockwork.Clock, clockSvc *ClockService, ledger *LedgerService, timeout time.Duration) *DayCycleService {
	return &DayCycleService{db: db, clock: clock, clockSvc: clockSvc, ledger: ledger, timeout: timeout}
}

func (s *DayCycleService) Halted() bool {
	return s.halted.Load()
}

// Resume re-enables automatic transitions after an administrative reset.
func (s *DayCycleService) Resume() {
	s.halted.Store(false)
}

// Evaluate applies the day-end rule now, regardless of the clock. This is the
// explicit trigger behind POST /api/day-end.
func (s *DayCycleService) Evaluate(ctx context.Context) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evaluateLocked(ctx)
}

// PollOnce is the periodic check: it evaluates only when the day has run out.
// TryLock gives the required skip-if-already-running semantics; a poll that
// finds an evaluation in flight skips rather than queues.
func (s *DayCycleService) PollOnce(ctx context.Context) {
	if s.halted.Load() {
		return
	}
	if !s.mu.TryLock() {
		return
	}
	defer s.mu.Unlock()

	state := s.clockSvc.Read(ctx)
	if state.Status != models.GameStatusRunning || s.clockSvc.SecondsLeft(state) > 0 {
		return
	}
	if _, err := s.evaluateLocked(ctx); err != nil {
		log.Printf("daycycle: evaluation failed: %v", err)
	}
}

// RunPoller drives PollOnce until ctx is cancelled.
func (s *DayCycleService) RunPoller(ctx context.Context, interval time.Duration) {
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.PollOnce(ctx)
		}
	}
}

func (s *DayCycleService) evaluateLocked(ctx context.Context) (*Outcome, error) {
	state := s.clockSvc.Read(ctx)
	switch state.Status {
	case models.GameStatusLost:
		return &Outcome{Lost: true, NewDay: state.Day}, nil
	case models.GameStatusComplete:
		return &Outcome{Complete: true, NewDay: state.Day}, nil
	}

	today, err := s.ledger.CountForDay(ctx, state.Day)
	if err != nil {
		return nil, err
	}
	yesterday, err := s.ledger.CountForDay(ctx, state.Day+1)
	if err != nil {
		return nil, err
	}

	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if today < yesterday {
		err := s.db.WithContext(tctx).Transaction(func(tx *gorm.DB) error {
			return s.clockSvc.markLost(tx, state.Day)
		})
		if errors.Is(err, ErrConflict) {
			return s.resolveConflict(ctx, state)
		}
		if err != nil {
			return nil, err
		}
		log.Printf("daycycle: day %d lost (%d/%d clicks)", state.Day, today, yesterday)
		return &Outcome{Lost: true, NewDay: state.Day, TodayClicks: today, YesterdayClicks: yesterday}, nil
	}

	newDay := state.Day - 1
	if newDay < 0 {
		newDay = 0
	}
	newStatus := models.GameStatusRunning
	if newDay == 0 {
		newStatus = models.GameStatusComplete
	}

	now := s.clock.Now()
	err = s.db.WithContext(tctx).Transaction(func(tx *gorm.DB) error {
		if err := s.clockSvc.advance(tx, state.Day, newDay, now, newStatus); err != nil {
			return err
		}
		return s.applyStreaks(tx, state.Day)
	})
	if errors.Is(err, ErrConflict) {
		return s.resolveConflict(ctx, state)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("daycycle: day %d won (%d/%d clicks), advancing to %d", state.Day, today, yesterday, newDay)
	return &Outcome{
		Won:             true,
		Complete:        newDay == 0,
		NewDay:          newDay,
		TodayClicks:     today,
		YesterdayClicks: yesterday,
	}, nil
}

// resolveConflict runs when the compare-and-swap lost to a concurrent
// trigger: the other trigger's outcome stands. Seeing the pre-state again
// here is impossible unless something else rewrote the row, which is an
// invariant violation that halts automatic transitions.
func (s *DayCycleService) resolveConflict(ctx context.Context, prev DayState) (*Outcome, error) {
	state := s.clockSvc.Read(ctx)
	if state.Day == prev.Day && state.Status == models.GameStatusRunning {
		s.halted.Store(true)
		return nil, fmt.Errorf("day %d transition conflicted but state is unchanged; halting automatic transitions", prev.Day)
	}

	switch state.Status {
	case models.GameStatusLost:
		return &Outcome{Lost: true, NewDay: state.Day}, nil
	case models.GameStatusComplete:
		return &Outcome{Won: true, Complete: true, NewDay: state.Day}, nil
	default:
		return &Outcome{Won: true, NewDay: state.Day}, nil
	}
}

// applyStreaks updates every player who clicked on the just-completed day:
// those also active the day before extend their streak, the rest restart at 1.
// Days count down, so "the day before" is completedDay+1.
func (s *DayCycleService) applyStreaks(tx *gorm.DB, completedDay int) error {
	err := tx.Exec(`UPDATE players SET streak = streak + 1, days_played = days_played + 1
		WHERE id IN (SELECT DISTINCT player_id FROM clicks WHERE day = ?)
		  AND id IN (SELECT DISTINCT player_id FROM clicks WHERE day = ?)`,
		completedDay, completedDay+1).Error
	if err != nil {
		return err
	}
	return tx.Exec(`UPDATE players SET streak = 1, days_played = days_played + 1
		WHERE id IN (SELECT DISTINCT player_id FROM clicks WHERE day = ?)
		  AND id NOT IN (SELECT DISTINCT player_id FROM clicks WHERE day = ?)`,
		completedDay, completedDay+1).Error
}
