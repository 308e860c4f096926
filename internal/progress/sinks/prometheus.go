package sinks

import (
	"context"

	"github.com/feedrank/feedrank/internal/metrics"
	"github.com/feedrank/feedrank/internal/progress"
)

// PrometheusSink forwards progress events to the process-wide Prometheus
// collectors.
type PrometheusSink struct{}

// NewPrometheusSink initializes the collectors and returns the sink.
func NewPrometheusSink() *PrometheusSink {
	metrics.Init()
	return &PrometheusSink{}
}

// Consume updates the collector matching the event stage.
func (s *PrometheusSink) Consume(_ context.Context, evt progress.Event) error {
	switch evt.Stage {
	case progress.StageRequestAttempted:
		metrics.ObserveRequestAttempted()
	case progress.StageRequestFailed:
		metrics.ObserveRequestFailed()
	case progress.StageItemFetched:
		metrics.ObserveItemFetched(evt.Source)
	case progress.StageItemFailed:
		metrics.ObserveItemFailed(evt.Source)
	case progress.StageSourceDone, progress.StageSourceError:
		// source lifecycle is visible through the per-source item counters
	}
	return nil
}

// Close implements the Sink interface; it performs no action.
func (s *PrometheusSink) Close(context.Context) error {
	return nil
}
