package sinks

import (
	"context"
	"sync/atomic"

	"github.com/feedrank/feedrank/internal/progress"
)

// Stats is a point-in-time snapshot of run counters.
type Stats struct {
	RequestsAttempted int64
	RequestsFailed    int64
	ItemsFetched      int64
	ItemsFailed       int64
}

// StatsSink tallies run counters for the end-of-run summary log.
type StatsSink struct {
	requestsAttempted atomic.Int64
	requestsFailed    atomic.Int64
	itemsFetched      atomic.Int64
	itemsFailed       atomic.Int64
}

// NewStatsSink creates an empty StatsSink.
func NewStatsSink() *StatsSink {
	return &StatsSink{}
}

// Consume increments the counter matching the event stage.
func (s *StatsSink) Consume(_ context.Context, evt progress.Event) error {
	switch evt.Stage {
	case progress.StageRequestAttempted:
		s.requestsAttempted.Add(1)
	case progress.StageRequestFailed:
		s.requestsFailed.Add(1)
	case progress.StageItemFetched:
		s.itemsFetched.Add(1)
	case progress.StageItemFailed:
		s.itemsFailed.Add(1)
	}
	return nil
}

// Close implements the Sink interface; it performs no action.
func (s *StatsSink) Close(context.Context) error {
	return nil
}

// Snapshot returns the current counter values.
func (s *StatsSink) Snapshot() Stats {
	return Stats{
		RequestsAttempted: s.requestsAttempted.Load(),
		RequestsFailed:    s.requestsFailed.Load(),
		ItemsFetched:      s.itemsFetched.Load(),
		ItemsFailed:       s.itemsFailed.Load(),
	}
}
