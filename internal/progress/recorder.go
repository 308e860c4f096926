package progress

import (
	"github.com/google/uuid"

	"github.com/feedrank/feedrank/internal/feed"
)

// RunRecorder translates pipeline callbacks into events for one run.
// It implements feed.Recorder; every call is fire-and-forget.
type RunRecorder struct {
	emitter Emitter
	runID   uuid.UUID
	clock   feed.Clock
}

// NewRunRecorder binds an emitter to a run ID and clock.
func NewRunRecorder(emitter Emitter, runID uuid.UUID, clock feed.Clock) *RunRecorder {
	return &RunRecorder{
		emitter: emitter,
		runID:   runID,
		clock:   clock,
	}
}

// RequestAttempted implements feed.Recorder.
func (r *RunRecorder) RequestAttempted(target string) {
	r.emit(Event{Stage: StageRequestAttempted, Target: target})
}

// RequestFailed implements feed.Recorder.
func (r *RunRecorder) RequestFailed(target string) {
	r.emit(Event{Stage: StageRequestFailed, Target: target})
}

// ItemFetched implements feed.Recorder.
func (r *RunRecorder) ItemFetched(source string) {
	r.emit(Event{Stage: StageItemFetched, Source: source})
}

// ItemFailed implements feed.Recorder.
func (r *RunRecorder) ItemFailed(source string) {
	r.emit(Event{Stage: StageItemFailed, Source: source})
}

// SourceDone reports a completed source and its item count.
func (r *RunRecorder) SourceDone(source string, items int) {
	r.emit(Event{Stage: StageSourceDone, Source: source, Items: items})
}

// SourceError reports a source-level failure.
func (r *RunRecorder) SourceError(source string, note string) {
	r.emit(Event{Stage: StageSourceError, Source: source, Note: note})
}

func (r *RunRecorder) emit(evt Event) {
	if r == nil || r.emitter == nil {
		return
	}
	evt.RunID = r.runID
	evt.TS = r.clock.Now()
	r.emitter.Emit(evt)
}
