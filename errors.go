package parallel

import "errors"

// Usage and configuration errors are surfaced at region entry, before any
// worker has been spawned; ErrRegionFailed is the single aggregated failure
// raised after all workers have joined.
var (
	// ErrRegionReused is returned when a region is entered a second time.
	ErrRegionReused = errors.New("parallel: a region may only be entered once")

	// ErrNestingDisabled is returned when a region is entered inside another
	// while nesting is disabled by configuration.
	ErrNestingDisabled = errors.New("parallel: nested regions are disabled")

	// ErrThreadConfig indicates a malformed thread-count configuration.
	ErrThreadConfig = errors.New("parallel: invalid thread-count configuration")

	// ErrRegionFailed represents one or more worker faults; the individual
	// faults are logged, never re-raised with their original identity.
	ErrRegionFailed = errors.New("parallel: an error occurred in this parallel region")
)
