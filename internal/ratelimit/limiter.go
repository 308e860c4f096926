// Package ratelimit implements the token bucket admission gate shared by all
// outbound requests.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/feedrank/feedrank/internal/feed"
	"github.com/feedrank/feedrank/internal/metrics"
)

// Limiter admits one request per token, refilling continuously at the
// configured rate. Safe for concurrent callers; waiters are admitted in
// FIFO-ish order by the underlying bucket with no stronger guarantee.
type Limiter struct {
	bucket *rate.Limiter
}

// New builds a Limiter admitting requestsPerSecond sustained. A zero or
// negative rate is a configuration error: a limiter that never admits is a
// deadlock, not a valid state.
func New(requestsPerSecond int) (*Limiter, error) {
	if requestsPerSecond <= 0 {
		return nil, &feed.InvalidConfigError{
			Detail: fmt.Sprintf("requests_per_second must be > 0, got %d", requestsPerSecond),
		}
	}
	// Burst of one keeps admissions evenly paced, so no rolling one-second
	// window ever sees more than the configured rate.
	return &Limiter{
		bucket: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}, nil
}

// Wait blocks until one unit of capacity is available, respecting the context.
func (l *Limiter) Wait(ctx context.Context) error {
	start := time.Now()
	if err := l.bucket.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	if waited := time.Since(start); waited > time.Millisecond {
		metrics.ObserveRateLimitDelay(waited)
	}
	return nil
}
