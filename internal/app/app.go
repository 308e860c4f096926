// Package app initializes and holds long-lived application services, acting
// as a dependency injection container for the collection pipeline.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feedrank/feedrank/internal/aggregate"
	"github.com/feedrank/feedrank/internal/api"
	clocksys "github.com/feedrank/feedrank/internal/clock/system"
	"github.com/feedrank/feedrank/internal/config"
	"github.com/feedrank/feedrank/internal/feed"
	"github.com/feedrank/feedrank/internal/fetch"
	"github.com/feedrank/feedrank/internal/fetch/web"
	idgen "github.com/feedrank/feedrank/internal/id/uuid"
	"github.com/feedrank/feedrank/internal/metrics"
	"github.com/feedrank/feedrank/internal/progress"
	"github.com/feedrank/feedrank/internal/progress/sinks"
	"github.com/feedrank/feedrank/internal/rank"
	"github.com/feedrank/feedrank/internal/ratelimit"
	"github.com/feedrank/feedrank/internal/report"
	"github.com/feedrank/feedrank/internal/score"
	"github.com/feedrank/feedrank/internal/source"
)

const shutdownTimeout = 5 * time.Second

// App holds the shared, long-lived services for one pipeline run. It is
// initialized once at startup and fails fast if any service cannot be built.
type App struct {
	cfg    config.Config
	logger *zap.Logger
	out    io.Writer

	runID    uuid.UUID
	clock    feed.Clock
	hub      *progress.Hub
	stats    *sinks.StatsSink
	recorder *progress.RunRecorder

	aggregator *aggregate.Aggregator
	scorer     *score.Scorer
	server     *api.Server
}

// New wires the pipeline from configuration. Results are rendered to out.
func New(cfg config.Config, logger *zap.Logger, out io.Writer) (*App, error) {
	runID := idgen.New().NewID()
	clock := clocksys.New()

	stats := sinks.NewStatsSink()
	hub := progress.NewHub(
		progress.Config{Logger: logger},
		sinks.NewLogSink(logger),
		sinks.NewPrometheusSink(),
		stats,
	)
	recorder := progress.NewRunRecorder(hub, runID, clock)

	limiter, err := ratelimit.New(cfg.RateLimit.RequestsPerSecond)
	if err != nil {
		hub.Close(context.Background())
		return nil, fmt.Errorf("build rate limiter: %w", err)
	}
	fetcher := fetch.New(limiter, recorder, logger, fetch.Config{
		MaxAttempts: cfg.HTTP.RetryAttempts,
		Timeout:     cfg.Timeout(),
		BackoffBase: cfg.RetryBaseDelay(),
	})
	client := web.NewClient(web.Config{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.Timeout(),
	})

	collectorCfg := source.Config{
		MaxItems:    cfg.Fetcher.PerSourceItemCap,
		Concurrency: cfg.Fetcher.MaxConcurrentRequests,
	}
	var collectors []aggregate.Collector
	if cfg.Sources.HackerNews.Enabled {
		hn := source.NewHackerNews(client, cfg.Sources.HackerNews.BaseURL)
		collectors = append(collectors, source.NewCollector(hn, fetcher, recorder, logger, collectorCfg))
	}
	for _, blog := range cfg.Sources.Blogs {
		b := source.NewBlog(client, blog.Name, blog.IndexURL, blog.LinkSelector)
		collectors = append(collectors, source.NewCollector(b, fetcher, recorder, logger, collectorCfg))
	}
	if len(collectors) == 0 {
		hub.Close(context.Background())
		return nil, &feed.InvalidConfigError{Detail: "no sources enabled"}
	}

	a := &App{
		cfg:      cfg,
		logger:   logger,
		out:      out,
		runID:    runID,
		clock:    clock,
		hub:      hub,
		stats:    stats,
		recorder: recorder,
		aggregator: aggregate.New(collectors, recorder, logger, aggregate.Config{
			PartialOnCancel: cfg.Aggregator.PartialOnCancel,
		}),
		scorer: score.New(score.Config{
			MaxKeywords: cfg.Scorer.MaxKeywords,
			Workers:     cfg.Scorer.Workers,
		}, logger),
	}
	if cfg.Server.Enabled {
		a.server = api.NewServer(cfg.Server.Addr, stats, logger)
	}
	return a, nil
}

// RunID identifies this run in progress events and logs.
func (a *App) RunID() uuid.UUID {
	return a.runID
}

// Run executes the pipeline: collect from all sources, score against the
// configured keywords, rank, and render the report.
func (a *App) Run(ctx context.Context) error {
	start := a.clock.Now()
	a.logger.Info("run starting",
		zap.String("run_id", a.runID.String()),
		zap.Strings("keywords", a.cfg.Keywords),
	)

	if a.server != nil {
		go func() {
			if err := a.server.Start(); err != nil {
				a.logger.Error("diagnostics listener failed", zap.Error(err))
			}
		}()
	}

	items, err := a.aggregator.Run(ctx)
	if err != nil {
		return err
	}

	scored, err := a.scorer.Score(items, a.cfg.Keywords)
	if err != nil {
		return err
	}
	ranked := rank.Rank(scored)

	if err := report.Write(a.out, ranked, a.cfg.Report.TopN); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	a.drainHub()
	duration := a.clock.Now().Sub(start)
	metrics.ObserveRunDuration(duration)
	snap := a.stats.Snapshot()
	a.logger.Info("run complete",
		zap.String("run_id", a.runID.String()),
		zap.Duration("duration", duration),
		zap.Int("items_scored", len(ranked)),
		zap.Int64("requests_attempted", snap.RequestsAttempted),
		zap.Int64("requests_failed", snap.RequestsFailed),
		zap.Int64("items_fetched", snap.ItemsFetched),
		zap.Int64("items_failed", snap.ItemsFailed),
	)
	return nil
}

func (a *App) drainHub() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.hub.Close(ctx); err != nil {
		a.logger.Warn("event hub close", zap.Error(err))
	}
}

// Close shuts down remaining services. It is called after Run, including on
// failure, so it tolerates an already-drained hub.
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.Warn("diagnostics listener shutdown", zap.Error(err))
		}
	}
	if err := a.hub.Close(ctx); err != nil {
		a.logger.Warn("event hub close", zap.Error(err))
	}
	// Best effort; stderr sync commonly fails on ttys.
	_ = a.logger.Sync()
}
