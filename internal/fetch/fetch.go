// Package fetch wraps raw network operations with rate-limit admission,
// per-attempt timeouts, exponential backoff, and cooperative cancellation.
package fetch

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/feedrank/feedrank/internal/feed"
	"github.com/feedrank/feedrank/internal/ratelimit"
)

// Config controls retry behavior for every operation run through a Fetcher.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// Timeout bounds each individual attempt.
	Timeout time.Duration
	// BackoffBase is the delay before the first retry; it doubles per retry.
	BackoffBase time.Duration
}

// Fetcher runs idempotent network operations with retries. Attempts within a
// single call are strictly sequential; concurrency happens across calls.
type Fetcher struct {
	limiter  *ratelimit.Limiter
	recorder feed.Recorder
	logger   *zap.Logger
	cfg      Config
	sleep    func(ctx context.Context, d time.Duration) error
}

// New constructs a Fetcher. A nil recorder disables event emission.
func New(limiter *ratelimit.Limiter, recorder feed.Recorder, logger *zap.Logger, cfg Config) *Fetcher {
	if recorder == nil {
		recorder = feed.NopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Fetcher{
		limiter:  limiter,
		recorder: recorder,
		logger:   logger,
		cfg:      cfg,
		sleep:    sleepCtx,
	}
}

// Backoff returns the delay before the retry following the given attempt:
// base * 2^(attempt-1), so the first retry waits the unscaled base.
func Backoff(attempt int, base time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d < 0 { // overflow
			return 1<<63 - 1
		}
	}
	return d
}

// Do runs op under the fetcher's retry policy and returns its payload.
//
// Per attempt: the cancellation signal is checked first, then rate-limit
// admission is acquired, then op runs under the per-attempt timeout. A
// deadline expiry is retried like any other failure but reported as a
// timeout if attempts are exhausted. The backoff sleep between attempts is
// itself cancellable.
func Do[T any](ctx context.Context, f *Fetcher, target string, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	lastTimedOut := false

	for attempt := 1; attempt <= f.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		if err := f.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return zero, ctx.Err()
			}
			return zero, err
		}

		f.recorder.RequestAttempted(target)

		attemptCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
		payload, err := op(attemptCtx)
		timedOut := attemptCtx.Err() != nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded)
		cancel()

		if err == nil {
			return payload, nil
		}

		f.recorder.RequestFailed(target)
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		lastErr = err
		lastTimedOut = timedOut || errors.Is(err, context.DeadlineExceeded)

		if attempt >= f.cfg.MaxAttempts {
			break
		}

		delay := Backoff(attempt, f.cfg.BackoffBase)
		f.logger.Warn("request failed, retrying",
			zap.String("target", target),
			zap.Int("attempt", attempt),
			zap.Duration("retry_delay", delay),
			zap.Error(err),
		)
		if err := f.sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	f.logger.Warn("max retry attempts reached",
		zap.String("target", target),
		zap.Int("attempts", f.cfg.MaxAttempts),
		zap.Error(lastErr),
	)
	if lastTimedOut {
		return zero, &feed.TimeoutError{Target: target, Attempts: f.cfg.MaxAttempts}
	}
	return zero, &feed.NetworkError{Target: target, Attempts: f.cfg.MaxAttempts, Err: lastErr}
}

// sleepCtx waits for d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
