package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/models"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// onlineWindow is how recently a player must have clicked to count as online.
// Purely presentational, computed at read time.
const onlineWindow = 60 * time.Second

type PlayerService struct {
	db      *gorm.DB
	clock   clockwork.Clock
	timeout time.Duration
}

func NewPlayerService(db *gorm.DB, clock clockwork.Clock, timeout time.Duration) *PlayerService {
	return &PlayerService{db: db, clock: clock, timeout: timeout}
}

// GetOrCreate returns the player, creating the row on first contact.
func (s *PlayerService) GetOrCreate(ctx context.Context, playerID string) (*models.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	player := models.Player{ID: playerID, FirstSeen: s.clock.Now()}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&player).Error; err != nil {
		return nil, err
	}

	var out models.Player
	if err := s.db.WithContext(ctx).First(&out, "id = ?", playerID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// SetNickname claims a nickname atomically: the row is updated only while the
// nickname is still unset, and the unique index rejects a taken name. There
// is deliberately no separate existence check to race against.
func (s *PlayerService) SetNickname(ctx context.Context, playerID, nickname string) error {
	if n := utf8.RuneCountInString(nickname); n < 2 || n > 30 {
		return ErrNicknameLength
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		player := models.Player{ID: playerID, FirstSeen: s.clock.Now()}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&player).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Player{}).
			Where("id = ? AND nickname IS NULL", playerID).
			Update("nickname", nickname)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return ErrNicknameTaken
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNicknameSet
		}
		return nil
	})
}

func (s *PlayerService) HasNickname(ctx context.Context, playerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var player models.Player
	err := s.db.WithContext(ctx).First(&player, "id = ?", playerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return player.Nickname != nil, nil
}

func (s *PlayerService) CountOnline(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Player{}).
		Where("last_click_at > ?", s.clock.Now().Add(-onlineWindow)).
		Count(&count).Error
	return count, err
}

// ResetStats zeroes per-game-run stats. Nicknames survive a reset, the
// identity is the one thing a wipe should not take away.
func (s *PlayerService) ResetStats(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.db.WithContext(ctx).Model(&models.Player{}).
		Where("1 = 1").
		Updates(map[string]interface{}{
			"total_clicks": 0,
			"streak":       0,
			"days_played":  0,
		}).Error
}
