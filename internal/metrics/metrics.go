// Package metrics exposes Prometheus collectors for the aggregation pipeline.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsAttemptedTotal prometheus.Counter
	requestsFailedTotal    prometheus.Counter
	itemsFetchedTotal      *prometheus.CounterVec
	itemsFailedTotal       *prometheus.CounterVec
	rateLimitDelaySeconds  prometheus.Histogram
	runDurationSeconds     prometheus.Histogram

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		requestsAttemptedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "feedrank_requests_attempted_total",
				Help: "Total number of fetch attempts, including retries.",
			},
		)

		requestsFailedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "feedrank_requests_failed_total",
				Help: "Total number of failed fetch attempts.",
			},
		)

		itemsFetchedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feedrank_items_fetched_total",
				Help: "Total number of items successfully fetched, labeled by source.",
			},
			[]string{"source"},
		)

		itemsFailedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feedrank_items_failed_total",
				Help: "Total number of items that could not be fetched, labeled by source.",
			},
			[]string{"source"},
		)

		rateLimitDelaySeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "feedrank_rate_limit_delay_seconds",
				Help:    "Histogram of rate limit admission wait durations.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
		)

		runDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "feedrank_run_duration_seconds",
				Help:    "Histogram of full pipeline run durations.",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
			},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequestAttempted increments the attempt counter.
func ObserveRequestAttempted() {
	Init()
	requestsAttemptedTotal.Inc()
}

// ObserveRequestFailed increments the failure counter.
func ObserveRequestFailed() {
	Init()
	requestsFailedTotal.Inc()
}

// ObserveItemFetched increments the per-source fetched counter.
func ObserveItemFetched(source string) {
	Init()
	itemsFetchedTotal.WithLabelValues(source).Inc()
}

// ObserveItemFailed increments the per-source failed counter.
func ObserveItemFailed(source string) {
	Init()
	itemsFailedTotal.WithLabelValues(source).Inc()
}

// ObserveRateLimitDelay records the duration of a rate limit wait.
func ObserveRateLimitDelay(duration time.Duration) {
	Init()
	rateLimitDelaySeconds.Observe(duration.Seconds())
}

// ObserveRunDuration records how long a full pipeline run took.
func ObserveRunDuration(duration time.Duration) {
	Init()
	runDurationSeconds.Observe(duration.Seconds())
}
