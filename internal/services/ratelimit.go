package services

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// RateLimitService is the per-player sliding-window admission control. It is
// in-memory and best-effort: it does not survive restarts and limits per
// process under horizontal scaling, which is an accepted relaxation.
type RateLimitService struct {
	mu         sync.Mutex
	clock      clockwork.Clock
	maxPerSec  int
	burstDepth int
	window     time.Duration
	times      map[string][]time.Time
}

func NewRateLimitService(clock clockwork.Clock, maxPerSec, burstDepth int) *RateLimitService {
	return &RateLimitService{
		clock:      clock,
		maxPerSec:  maxPerSec,
		burstDepth: burstDepth,
		window:     time.Second,
		times:      make(map[string][]time.Time),
	}
}

// Admit decides whether a click attempt may proceed. A rejected click must
// not reach the ledger or touch any counter.
func (s *RateLimitService) Admit(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	times := s.times[playerID]

	recent := 0
	for _, t := range times {
		if now.Sub(t) < s.window {
			recent++
		}
	}
	if recent >= s.maxPerSec {
		return false
	}

	times = append(times, now)
	if len(times) > s.burstDepth {
		times = times[len(times)-s.burstDepth:]
	}
	s.times[playerID] = times
	return true
}

// Reset drops all windows, used by the administrative game reset.
func (s *RateLimitService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.times = make(map[string][]time.Time)
}
