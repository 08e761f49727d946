package services

import (
	"context"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/ws"
)

const leaderboardSize = 100

// SnapshotService assembles the broadcast payload: the shared game view plus
// a personalized fragment per requested player, all derived from one ranking
// pass. It implements ws.SnapshotSource.
type SnapshotService struct {
	clockSvc *ClockService
	ledger   *LedgerService
	board    *LeaderboardService
	players  *PlayerService
}

func NewSnapshotService(clockSvc *ClockService, ledger *LedgerService, board *LeaderboardService, players *PlayerService) *SnapshotService {
	return &SnapshotService{clockSvc: clockSvc, ledger: ledger, board: board, players: players}
}

func (s *SnapshotService) Snapshot(ctx context.Context, playerIDs []string) (*ws.Snapshot, map[string]ws.PlayerView, error) {
	state := s.clockSvc.Read(ctx)

	today, err := s.ledger.CountForDay(ctx, state.Day)
	if err != nil {
		return nil, nil, err
	}
	yesterday, err := s.ledger.CountForDay(ctx, state.Day+1)
	if err != nil {
		return nil, nil, err
	}
	ranking, err := s.board.Ranking(ctx, state.Day)
	if err != nil {
		return nil, nil, err
	}
	online, err := s.players.CountOnline(ctx)
	if err != nil {
		return nil, nil, err
	}

	remaining := yesterday - today
	if remaining < 0 {
		remaining = 0
	}

	shared := &ws.Snapshot{
		Day:             state.Day,
		Status:          state.Status,
		TodayClicks:     today,
		YesterdayClicks: yesterday,
		Remaining:       remaining,
		SecondsLeft:     s.clockSvc.SecondsLeft(state),
		OnlineCount:     online,
		Leaderboard:     TopNOf(ranking, leaderboardSize),
	}

	byID := make(map[string]RankedPlayer, len(ranking))
	for _, row := range ranking {
		byID[row.PlayerID] = row
	}

	views := make(map[string]ws.PlayerView, len(playerIDs))
	for _, id := range playerIDs {
		if row, ok := byID[id]; ok {
			views[id] = ws.PlayerView{Nickname: row.Nickname, Clicks: row.Clicks, Rank: row.Rank}
		} else {
			// First contact before any click; nothing recorded yet.
			views[id] = ws.PlayerView{}
		}
	}
	return shared, views, nil
}
