package services

import (
	"context"
	"sort"
	"time"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/ws"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// RankedPlayer is one row of a day's ranking. Rank is assigned only to
// players with a nickname; everyone else carries rank 0 (unranked) but still
// reports their own click count.
type RankedPlayer struct {
	PlayerID    string
	Nickname    string
	Clicks      int64
	Rank        int
	Online      bool
	LastSeq     int64
	LastClickAt *time.Time
}

type LeaderboardService struct {
	db      *gorm.DB
	clock   clockwork.Clock
	timeout time.Duration
}

func NewLeaderboardService(db *gorm.DB, clock clockwork.Clock, timeout time.Duration) *LeaderboardService {
	return &LeaderboardService{db: db, clock: clock, timeout: timeout}
}

// Ranking returns every player ordered by clicks on the given day. Ties break
// by insertion order: the player whose final click landed in the ledger first
// reached the count first and ranks higher, then player id as a last resort.
func (s *LeaderboardService) Ranking(ctx context.Context, day int) ([]RankedPlayer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var rows []RankedPlayer
	err := s.db.WithContext(ctx).Raw(`
		SELECT p.id AS player_id,
		       COALESCE(p.nickname, '') AS nickname,
		       COUNT(c.id) AS clicks,
		       COALESCE(MAX(c.id), 0) AS last_seq,
		       p.last_click_at AS last_click_at
		FROM players p
		LEFT JOIN clicks c ON c.player_id = p.id AND c.day = ?
		GROUP BY p.id`, day).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Clicks != rows[j].Clicks {
			return rows[i].Clicks > rows[j].Clicks
		}
		if rows[i].LastSeq != rows[j].LastSeq {
			return rows[i].LastSeq < rows[j].LastSeq
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})

	now := s.clock.Now()
	rank := 0
	for i := range rows {
		if rows[i].Nickname != "" {
			rank++
			rows[i].Rank = rank
		}
		rows[i].Online = rows[i].LastClickAt != nil && now.Sub(*rows[i].LastClickAt) < onlineWindow
	}
	return rows, nil
}

// TopN returns the day's leaderboard, nicknamed players only.
func (s *LeaderboardService) TopN(ctx context.Context, day, n int) ([]ws.LeaderboardEntry, error) {
	ranking, err := s.Ranking(ctx, day)
	if err != nil {
		return nil, err
	}
	return TopNOf(ranking, n), nil
}

// TopNOf derives the leaderboard from an already-computed ranking, letting
// the broadcast tick reuse its single ranking pass.
func TopNOf(ranking []RankedPlayer, n int) []ws.LeaderboardEntry {
	entries := make([]ws.LeaderboardEntry, 0, n)
	for _, row := range ranking {
		if row.Rank == 0 {
			continue
		}
		entries = append(entries, ws.LeaderboardEntry{
			Nickname: row.Nickname,
			Clicks:   row.Clicks,
			Online:   row.Online,
		})
		if len(entries) == n {
			break
		}
	}
	return entries
}

// RankOf returns a player's position on the day's leaderboard, or 0 when the
// player is unranked (no nickname or no row yet).
func (s *LeaderboardService) RankOf(ctx context.Context, playerID string, day int) (int, error) {
	ranking, err := s.Ranking(ctx, day)
	if err != nil {
		return 0, err
	}
	for _, row := range ranking {
		if row.PlayerID == playerID {
			return row.Rank, nil
		}
	}
	return 0, nil
}
