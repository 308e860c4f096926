package feed

import (
	"errors"
	"fmt"
)

// ErrNoItems marks "nothing obtainable" outcomes. NoItemsError wraps it so
// callers can match with errors.Is regardless of which source produced it.
var ErrNoItems = errors.New("no items found")

// NetworkError reports a fetch that exhausted its attempts on a
// non-timeout failure.
type NetworkError struct {
	Target   string
	Attempts int
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.Target, e.Attempts, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError reports a fetch whose final attempt exceeded the per-attempt
// deadline.
type TimeoutError struct {
	Target   string
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fetch %s timed out after %d attempts", e.Target, e.Attempts)
}

// NoItemsError reports a source (or the whole run) that produced no items.
// Distinguished from a hard fetch failure: listing worked, nothing usable
// came back.
type NoItemsError struct {
	Source string
}

func (e *NoItemsError) Error() string {
	return fmt.Sprintf("no items found from source: %s", e.Source)
}

// Is lets errors.Is(err, ErrNoItems) match.
func (e *NoItemsError) Is(target error) bool { return target == ErrNoItems }

// ExtractionError reports a payload that fetched fine but could not be turned
// into an Item.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract from %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// InvalidConfigError reports a configuration value the pipeline cannot run
// with. Always terminal, never retried.
type InvalidConfigError struct {
	Detail string
}

func (e *InvalidConfigError) Error() string {
	return "invalid configuration: " + e.Detail
}
