package schedule

import (
	"errors"
	"fmt"
)

// ErrBounds indicates invalid range bounds passed to a scheduler.
var ErrBounds = errors.New("schedule: invalid bounds")

// normalizeBounds expands (stop | start,stop | start,stop,step) into the
// explicit triple.
func normalizeBounds(bounds []int) (start, stop, step int, err error) {
	step = 1
	switch len(bounds) {
	case 1:
		stop = bounds[0]
	case 2:
		start, stop = bounds[0], bounds[1]
	case 3:
		start, stop, step = bounds[0], bounds[1], bounds[2]
		if step == 0 {
			return 0, 0, 0, fmt.Errorf("%w: step must not be zero", ErrBounds)
		}
	default:
		return 0, 0, 0, fmt.Errorf("%w: expected 1..3 bounds, got %d", ErrBounds, len(bounds))
	}
	return start, stop, step, nil
}

// rangeLen returns the number of items in the stride sequence
// start, start+step, … bounded exclusively by stop.
func rangeLen(start, stop, step int) int {
	if step > 0 {
		if stop <= start {
			return 0
		}
		return (stop - start + step - 1) / step
	}
	if start <= stop {
		return 0
	}
	return (start - stop - step - 1) / -step
}
