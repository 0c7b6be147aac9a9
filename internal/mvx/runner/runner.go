// Package runner repeats processor runs on an interval.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/mvx-txprocessor/internal/clock"
	"go.uber.org/zap"
)

var (
	// ErrNilProcessor is returned by New when no processor is given.
	ErrNilProcessor = errors.New("runner processor is required")
	// ErrNilMetrics is returned by New when no metrics recorder is given.
	ErrNilMetrics = errors.New("runner metrics is required")
)

// Options configures the schedule. Zero values fall back to defaults.
type Options struct {
	Interval time.Duration
	// Backoff is the first wait after a failed run; it doubles per consecutive failure up to MaxBackoff.
	Backoff    time.Duration
	MaxBackoff time.Duration
}

// Runner starts the processor every interval. When a Locker is configured, a run only
// happens while the lock is held, so several instances can share one watermark store.
type Runner struct {
	processor Processor
	locker    Locker
	metrics   Metrics
	logger    *zap.Logger
	sleep     func(context.Context, time.Duration) error
	interval  time.Duration
	backoff   clock.Backoff
}

// New builds a Runner. locker may be nil.
func New(processor Processor, locker Locker, metrics Metrics, logger *zap.Logger, opts Options) (*Runner, error) {
	if processor == nil {
		return nil, ErrNilProcessor
	}
	if metrics == nil {
		return nil, ErrNilMetrics
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.Backoff <= 0 {
		opts.Backoff = defaultBackoff
	}
	if opts.MaxBackoff < opts.Backoff {
		opts.MaxBackoff = max(defaultMaxBackoff, opts.Backoff)
	}

	return &Runner{
		processor: processor,
		locker:    locker,
		metrics:   metrics,
		logger:    logger.Named("runner"),
		sleep:     clock.SleepWithContext,
		interval:  opts.Interval,
		backoff:   clock.Backoff{Initial: opts.Backoff, Max: opts.MaxBackoff},
	}, nil
}

// Run repeats runs until the context is canceled.
func (r *Runner) Run(ctx context.Context) error {
	failures := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := r.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failures++
			delay := r.backoff.Delay(failures)
			r.logger.Warn("run failed, backing off",
				zap.Error(err),
				zap.Int("failures", failures),
				zap.Duration("sleep", delay),
			)
			if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
				return sleepErr
			}
			continue
		}
		failures = 0
		if sleepErr := r.sleep(ctx, r.interval); sleepErr != nil {
			return sleepErr
		}
	}
}

func (r *Runner) run(ctx context.Context) (err error) {
	started := time.Now()

	if r.locker != nil {
		acquired, lockErr := r.locker.TryLock(ctx)
		r.metrics.ObserveLock(acquired, lockErr)
		if lockErr != nil {
			return fmt.Errorf("acquire run lock: %w", lockErr)
		}
		if !acquired {
			r.logger.Debug("run lock is held by another instance")
			return nil
		}
		defer r.unlock(ctx)
	}

	defer func() {
		r.metrics.ObserveCycle(err, started)
	}()

	return r.processor.Start(ctx)
}

func (r *Runner) unlock(ctx context.Context) {
	unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
	defer cancel()

	if err := r.locker.Unlock(unlockCtx); err != nil {
		r.logger.Warn("release run lock failed", zap.Error(err))
	}
}
