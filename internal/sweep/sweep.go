// Package sweep drives the periodic recurring-task generation.
package sweep

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/planify/planify/internal/tracker"
)

// Sweeper runs the recurring-task sweep on a fixed interval for as long as
// the session lives. The sweep is best-effort: it fires approximately once
// per interval of continuous uptime, and occurrences missed while the
// process was down are not backfilled on relaunch.
type Sweeper struct {
	store    *tracker.Store
	interval time.Duration
	log      *zap.Logger
}

// New creates a Sweeper. A non-positive interval defaults to 24 hours; a
// nil logger discards logs.
func New(store *tracker.Store, interval time.Duration, log *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sweeper{store: store, interval: interval, log: log}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.Sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-ctx.Done():
			s.log.Info("recurring sweep stopped")
			return
		}
	}
}

// Sweep generates today's recurring tasks once and logs the outcome.
func (s *Sweeper) Sweep() {
	start := time.Now()
	generated := s.store.GenerateRecurringTasks()
	s.log.Info("recurring sweep finished",
		zap.Int("generated", len(generated)),
		zap.Duration("took", time.Since(start)),
	)
}
