package records

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/assessment-records/internal/domain/entities"
	"github.com/johnquangdev/assessment-records/pkg/config"
)

// ErrWatchExpired is returned when records are still pending after the
// maximum watch time
var ErrWatchExpired = errors.New("watch expired with records still pending")

// Refresher is the part of Service the watcher drives
type Refresher interface {
	Refresh(ctx context.Context, email string) ([]entities.Record, error)
}

// Watcher refreshes a user's records on an exponential schedule until the
// analysis pipeline has delivered every video and report
type Watcher struct {
	refresher Refresher
	cfg       config.WatchConfig
	logger    *zap.Logger
}

// NewWatcher creates a new watcher
func NewWatcher(refresher Refresher, cfg config.WatchConfig, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		refresher: refresher,
		cfg:       cfg,
		logger:    logger,
	}
}

// Watch refreshes immediately and then after each backoff interval. onUpdate
// sees every committed result. It returns nil once nothing is pending, the
// context error when cancelled, or ErrWatchExpired.
func (w *Watcher) Watch(ctx context.Context, email string, onUpdate func([]entities.Record)) error {
	schedule := backoff.NewExponentialBackOff()
	schedule.InitialInterval = w.cfg.InitialInterval
	schedule.MaxInterval = w.cfg.MaxInterval
	schedule.MaxElapsedTime = w.cfg.MaxElapsed
	schedule.Reset()

	ticks := backoff.WithContext(schedule, ctx)

	for {
		records, err := w.refresher.Refresh(ctx, email)
		switch {
		case errors.Is(err, entities.ErrRefreshSuperseded):
			w.logger.Debug("records.watch.superseded", zap.String("email", email))
		case err != nil:
			return err
		default:
			if onUpdate != nil {
				onUpdate(records)
			}
			pending := countPending(records)
			if pending == 0 {
				w.logger.Info("records.watch.settled", zap.String("email", email), zap.Int("count", len(records)))
				return nil
			}
			w.logger.Debug("records.watch.pending", zap.String("email", email), zap.Int("pending", pending))
		}

		next := ticks.NextBackOff()
		if next == backoff.Stop {
			if err := ctx.Err(); err != nil {
				return err
			}
			w.logger.Warn("records.watch.expired", zap.String("email", email))
			return ErrWatchExpired
		}

		timer := time.NewTimer(next)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func countPending(records []entities.Record) int {
	n := 0
	for i := range records {
		if records[i].HasPending() {
			n++
		}
	}
	return n
}
