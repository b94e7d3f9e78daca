package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
	"github.com/vncsmyrnk/digimarket/internal/metrics"
)

const (
	DefaultSweepInterval = time.Hour
	sweepTimeout         = 30 * time.Second
)

// Sweeper periodically removes ledger entries whose tokens have expired.
type Sweeper struct {
	ledger   ports.RevocationLedger
	interval time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

type SweeperOption func(*Sweeper)

func WithClock(now func() time.Time) SweeperOption {
	return func(s *Sweeper) { s.now = now }
}

func NewSweeper(ledger ports.RevocationLedger, interval time.Duration, logger zerolog.Logger, opts ...SweeperOption) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	s := &Sweeper{
		ledger:   ledger,
		interval: interval,
		now:      time.Now,
		logger:   logger.With().Str("component", "revocation_sweeper").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SweepOnce purges every entry that expired before now.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	removed, err := s.ledger.PurgeExpired(ctx, s.now())
	if err != nil {
		metrics.RevocationSweeps.WithLabelValues("failure").Inc()
		return 0, fmt.Errorf("failed to purge revoked tokens: %w", err)
	}

	metrics.RevocationSweeps.WithLabelValues("success").Inc()
	metrics.RevokedTokensPurged.Add(float64(removed))
	return removed, nil
}

// Run sweeps immediately and then on every interval until ctx is done.
// Failed sweeps are logged; the next tick retries.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	removed, err := s.SweepOnce(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error().Err(err).Msg("revocation sweep failed")
		return
	}
	s.logger.Info().Int64("removed", removed).Msg("cleaned up expired revoked tokens")
}
