package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/models"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerService owns the append-only click record. Counts are always derived
// by query, never cached.
type LedgerService struct {
	db      *gorm.DB
	clock   clockwork.Clock
	timeout time.Duration
}

func NewLedgerService(db *gorm.DB, clock clockwork.Clock, timeout time.Duration) *LedgerService {
	return &LedgerService{db: db, clock: clock, timeout: timeout}
}

// Append records one admitted click. The player row, the click insert and the
// lifetime counters move in a single transaction: a player's total can never
// drift from their ledger contributions.
func (s *LedgerService) Append(ctx context.Context, playerID string, day int) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := s.clock.Now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		player := models.Player{ID: playerID, FirstSeen: now}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&player).Error; err != nil {
			return err
		}

		click := models.Click{PlayerID: playerID, Day: day, ClickedAt: now}
		if err := tx.Create(&click).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Player{}).
			Where("id = ?", playerID).
			Updates(map[string]interface{}{
				"total_clicks":  gorm.Expr("total_clicks + 1"),
				"last_click_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("click by %s not reflected in lifetime totals", playerID)
		}
		return nil
	})
}

func (s *LedgerService) CountForDay(ctx context.Context, day int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Click{}).
		Where("day = ?", day).
		Count(&count).Error
	return count, err
}

func (s *LedgerService) CountForPlayer(ctx context.Context, playerID string, day int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Click{}).
		Where("player_id = ? AND day = ?", playerID, day).
		Count(&count).Error
	return count, err
}

func (s *LedgerService) DistinctPlayers(ctx context.Context, day int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var ids []string
	err := s.db.WithContext(ctx).Model(&models.Click{}).
		Distinct("player_id").
		Where("day = ?", day).
		Pluck("player_id", &ids).Error
	return ids, err
}

// Truncate clears the ledger, used by the administrative game reset.
func (s *LedgerService) Truncate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.Click{}).Error
}
