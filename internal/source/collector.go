// Package source implements per-source collection: discovering a work list
// and fanning out bounded-concurrency item fetches, plus the concrete
// sources the pipeline ships with.
package source

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/feedrank/feedrank/internal/feed"
	"github.com/feedrank/feedrank/internal/fetch"
)

// Config bounds a Collector's fan-out.
type Config struct {
	// MaxItems caps how many targets from the listing step are fetched.
	MaxItems int
	// Concurrency is the maximum number of in-flight target fetches.
	Concurrency int
}

// Collector orchestrates one source: it runs the listing step and the
// per-target fetches through the retrying fetcher, tolerating partial
// failure. Result order follows fetch completion, not request order; the
// ranking stage establishes the final order.
type Collector struct {
	src      feed.Source
	fetcher  *fetch.Fetcher
	recorder feed.Recorder
	logger   *zap.Logger
	cfg      Config
}

// NewCollector constructs a Collector. A nil recorder disables event emission.
func NewCollector(src feed.Source, fetcher *fetch.Fetcher, recorder feed.Recorder, logger *zap.Logger, cfg Config) *Collector {
	if recorder == nil {
		recorder = feed.NopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxItems < 1 {
		cfg.MaxItems = 1
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Collector{
		src:      src,
		fetcher:  fetcher,
		recorder: recorder,
		logger:   logger,
		cfg:      cfg,
	}
}

// Name returns the underlying source name.
func (c *Collector) Name() string {
	return c.src.Name()
}

// Collect produces the items obtainable from the source. A listing failure
// fails the whole source; a per-target failure is logged, recorded, and
// excluded. An empty result reports NoItemsError, distinguished from a hard
// fetch failure.
func (c *Collector) Collect(ctx context.Context) ([]feed.Item, error) {
	name := c.src.Name()

	targets, err := fetch.Do(ctx, c.fetcher, name+":list", c.src.ListTargets)
	if err != nil {
		return nil, fmt.Errorf("list targets for %s: %w", name, err)
	}
	if len(targets) > c.cfg.MaxItems {
		targets = targets[:c.cfg.MaxItems]
	}
	c.logger.Info("collected target list",
		zap.String("source", name),
		zap.Int("targets", len(targets)),
	)

	sem := semaphore.NewWeighted(int64(c.cfg.Concurrency))
	var (
		mu    sync.Mutex
		items []feed.Item
		wg    sync.WaitGroup
	)

	for _, target := range targets {
		// No new fetches launch once cancellation is signaled; in-flight
		// fetches observe it at their next checkpoint.
		if ctx.Err() != nil {
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(target feed.Target) {
			defer wg.Done()
			defer sem.Release(1)
			c.fetchOne(ctx, name, target, &mu, &items)
		}(target)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &feed.NoItemsError{Source: name}
	}
	return items, nil
}

func (c *Collector) fetchOne(ctx context.Context, name string, target feed.Target, mu *sync.Mutex, items *[]feed.Item) {
	item, err := fetch.Do(ctx, c.fetcher, target.Ref, func(ctx context.Context) (feed.Item, error) {
		return c.src.FetchTarget(ctx, target)
	})
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Warn("target fetch failed",
				zap.String("source", name),
				zap.String("target", target.Ref),
				zap.Error(err),
			)
			c.recorder.ItemFailed(name)
		}
		return
	}
	c.recorder.ItemFetched(name)
	mu.Lock()
	*items = append(*items, item)
	mu.Unlock()
}
