package feed

import (
	"context"
	"time"
)

// Source is the per-source collaborator contract. ListTargets discovers the
// work list; FetchTarget turns one target into an Item. Both are wrapped by
// the retrying fetcher by the pipeline, so implementations should perform a
// single network round trip per call and honor the context.
type Source interface {
	Name() string
	ListTargets(ctx context.Context) ([]Target, error)
	FetchTarget(ctx context.Context, target Target) (Item, error)
}

// Recorder receives pipeline events. Calls are fire-and-forget: they must
// never block and must never fail the pipeline.
type Recorder interface {
	RequestAttempted(target string)
	RequestFailed(target string)
	ItemFetched(source string)
	ItemFailed(source string)
}

// NopRecorder discards all events.
type NopRecorder struct{}

// RequestAttempted implements Recorder.
func (NopRecorder) RequestAttempted(string) {}

// RequestFailed implements Recorder.
func (NopRecorder) RequestFailed(string) {}

// ItemFetched implements Recorder.
func (NopRecorder) ItemFetched(string) {}

// ItemFailed implements Recorder.
func (NopRecorder) ItemFailed(string) {}

// Clock abstracts time.Now so components that stamp events can be tested
// with a fixed clock.
type Clock interface {
	Now() time.Time
}
