// Package sweeper expires stale holds in the background. It is the periodic
// half of expiry; hold creation performs the lazy half against individual
// rows the sweeper has not reached yet.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"tablebook/internal/pkg/clock"
)

// Reason tags a sweep run for the log stream.
type Reason string

const (
	ReasonBootstrap Reason = "bootstrap"
	ReasonInterval  Reason = "interval"
	ReasonManual    Reason = "manual"
)

type HoldSweepStore interface {
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

type Sweeper struct {
	store    HoldSweepStore
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger
}

func New(store HoldSweepStore, clk clock.Clock, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		clock:    clk,
		interval: interval,
		logger:   logger,
	}
}

// Run performs a bootstrap pass immediately, then sweeps every interval
// until the context is cancelled. Failures are logged and swallowed; the
// next tick retries.
func (s *Sweeper) Run(ctx context.Context) {
	s.SafeSweep(ctx, ReasonBootstrap)

	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.SafeSweep(ctx, ReasonInterval)
		}
	}
}

// SafeSweep flips every lapsed HELD hold to EXPIRED in one conditional bulk
// statement, so it is idempotent and safe to run concurrently with itself
// and with hold creation or consumption on the same rows. Zero rows affected
// is a success.
func (s *Sweeper) SafeSweep(ctx context.Context, reason Reason) int64 {
	swept, err := s.store.SweepExpired(ctx, s.clock.Now())
	if err != nil {
		s.logger.Error("hold sweep failed", "reason", string(reason), "error", err)
		return 0
	}
	if swept > 0 {
		s.logger.Info("expired stale holds", "reason", string(reason), "count", swept)
	}
	return swept
}
