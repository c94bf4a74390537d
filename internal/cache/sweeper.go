package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultSweepInterval is how often the background sweep runs. Correctness
// never depends on it: day-scoped keys and lazy expiry already keep stale
// data out of responses. The sweep only bounds memory growth from meal
// periods no longer being queried.
const DefaultSweepInterval = time.Hour

// Sweeper periodically calls Sweep on a store. It is decoupled from request
// traffic and owns its goroutine: Start launches it, Stop cancels and joins.
type Sweeper struct {
	store    Store
	interval time.Duration
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	logger   *zap.Logger
}

func NewSweeper(store Store, interval time.Duration, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the sweep loop. Calling Start more than once without an
// intervening Stop is a programming error.
func (s *Sweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.run(ctx)
}

// Stop cancels the loop and waits for it to exit. Safe to call once after
// Start; a Sweeper that was never started has nothing to stop.
func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.cancel = nil
}

func (s *Sweeper) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.store.Sweep()
			s.logger.Debug("sweep pass completed", zap.Int("removed", removed))
		}
	}
}
