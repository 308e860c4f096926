// Package aggregate runs all source collectors concurrently and merges their
// results.
package aggregate

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/feedrank/feedrank/internal/feed"
)

// Collector is the per-source contract the aggregator drives; satisfied by
// source.Collector.
type Collector interface {
	Name() string
	Collect(ctx context.Context) ([]feed.Item, error)
}

// SourceObserver receives source lifecycle notifications; satisfied by
// progress.RunRecorder.
type SourceObserver interface {
	SourceDone(source string, items int)
	SourceError(source string, note string)
}

type nopObserver struct{}

func (nopObserver) SourceDone(string, int)     {}
func (nopObserver) SourceError(string, string) {}

// Config holds the aggregator's merge policy.
type Config struct {
	// PartialOnCancel controls what happens when cancellation arrives after
	// at least one source has fully completed: true returns the partial
	// merged result, false returns the cancellation error. Deliberate policy
	// knob; both behaviors are valid.
	PartialOnCancel bool
}

// Aggregator coordinates the concurrent collection run.
type Aggregator struct {
	collectors []Collector
	observer   SourceObserver
	logger     *zap.Logger
	cfg        Config
}

// New constructs an Aggregator. A nil observer disables lifecycle events.
func New(collectors []Collector, observer SourceObserver, logger *zap.Logger, cfg Config) *Aggregator {
	if observer == nil {
		observer = nopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		collectors: collectors,
		observer:   observer,
		logger:     logger,
		cfg:        cfg,
	}
}

type sourceResult struct {
	name  string
	items []feed.Item
	err   error
}

// Run collects from every source concurrently and merges the successes.
// A source-level failure is recorded and excluded; only all sources failing
// (or returning empty) is terminal. On cancellation the aggregator waits for
// in-flight collectors to observe the signal, then applies the
// PartialOnCancel policy.
func (a *Aggregator) Run(ctx context.Context) ([]feed.Item, error) {
	if len(a.collectors) == 0 {
		return nil, &feed.InvalidConfigError{Detail: "no sources configured"}
	}

	results := make(chan sourceResult, len(a.collectors))
	for _, c := range a.collectors {
		go func(c Collector) {
			items, err := c.Collect(ctx)
			results <- sourceResult{name: c.Name(), items: items, err: err}
		}(c)
	}

	var merged []feed.Item
	completed := 0
	for range a.collectors {
		res := <-results
		if res.err != nil {
			if errors.Is(res.err, context.Canceled) {
				a.logger.Info("source cancelled", zap.String("source", res.name))
				continue
			}
			a.logger.Warn("source failed",
				zap.String("source", res.name),
				zap.Error(res.err),
			)
			a.observer.SourceError(res.name, res.err.Error())
			continue
		}
		a.logger.Info("source completed",
			zap.String("source", res.name),
			zap.Int("items", len(res.items)),
		)
		a.observer.SourceDone(res.name, len(res.items))
		merged = append(merged, res.items...)
		completed++
	}

	if err := ctx.Err(); err != nil {
		if a.cfg.PartialOnCancel && completed > 0 {
			a.logger.Info("returning partial result after cancellation",
				zap.Int("completed_sources", completed),
				zap.Int("items", len(merged)),
			)
			return merged, nil
		}
		return nil, err
	}
	if len(merged) == 0 {
		return nil, &feed.NoItemsError{Source: "all sources"}
	}
	return merged, nil
}
