// Package progress defines the event stream emitted by the pipeline and the
// non-blocking hub that fans it out to sinks.
package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage denotes the kind of milestone represented by an Event.
type Stage string

// Supported progress stages.
const (
	StageRequestAttempted Stage = "REQUEST_ATTEMPTED"
	StageRequestFailed    Stage = "REQUEST_FAILED"
	StageItemFetched      Stage = "ITEM_FETCHED"
	StageItemFailed       Stage = "ITEM_FAILED"
	StageSourceDone       Stage = "SOURCE_DONE"
	StageSourceError      Stage = "SOURCE_ERROR"
)

// Event captures a single pipeline milestone.
type Event struct {
	// RunID identifies the aggregation run the event belongs to.
	RunID uuid.UUID
	// TS is the UTC timestamp recorded by the emitter.
	TS time.Time
	// Stage denotes which milestone occurred.
	Stage Stage
	// Source names the content source for item and source events.
	Source string
	// Target is the optional fetch target for request events.
	Target string
	// Items carries the item count for SOURCE_DONE events.
	Items int
	// Note lets emitters attach low-volume debug context (e.g. error text).
	Note string
}

// Validate performs coarse validation on Event payloads.
func (e Event) Validate() error {
	if e.RunID == uuid.Nil {
		return errors.New("run id is required")
	}
	if e.TS.IsZero() {
		return errors.New("timestamp is required")
	}
	switch e.Stage {
	case StageRequestAttempted, StageRequestFailed:
	case StageItemFetched, StageItemFailed, StageSourceDone, StageSourceError:
		if e.Source == "" {
			return fmt.Errorf("%s requires source", e.Stage)
		}
	default:
		return fmt.Errorf("unknown stage %q", e.Stage)
	}
	return nil
}
