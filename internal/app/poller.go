package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	defaultRefreshInterval = 15 * time.Second
	maxBackoff             = 5 * time.Minute
)

// refreshSource is the slice of lists.Manager the refresher needs.
type refreshSource interface {
	RefreshLists(ctx context.Context) error
	InFlight() int64
}

// StartRefresher launches a background goroutine that re-fetches the list
// collection at a fixed cadence, backing off after failures. A round is
// skipped while mutations are waiting on the service; RefreshLists itself
// drops results that overlapped a mutation. The returned channel closes when
// the goroutine exits.
func StartRefresher(ctx context.Context, src refreshSource, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("refresher")
	done := make(chan struct{})

	go func() {
		defer close(done)
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if n := src.InFlight(); n > 0 {
				log.Debug("refresh skipped", zap.Int64("in_flight", n))
				timer.Reset(interval)
				continue
			}

			if err := src.RefreshLists(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
				wait := calculateBackoff(failures, interval)
				log.Warn("refresh failed",
					zap.Error(err),
					zap.Int("failures", failures),
					zap.Duration("retry_in", wait),
				)
				timer.Reset(wait)
				continue
			}
			if failures > 0 {
				log.Info("refresh recovered", zap.Int("failures", failures))
			}
			failures = 0
			timer.Reset(interval)
		}
	}()
	return done
}

// calculateBackoff doubles base for each consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures > 16 {
		return maxBackoff
	}
	backoff := base << failures
	if backoff > maxBackoff || backoff <= 0 {
		return maxBackoff
	}
	return backoff
}
