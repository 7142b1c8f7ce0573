package parallel

import (
	"context"
	"iter"
	"sync"

	"github.com/viant/parallel/progress"
	"github.com/viant/parallel/schedule"
)

// Worker is one participant's view of a region.  It is valid only for the
// region's lifetime; do not retain it past the body's return.
type Worker struct {
	region    *Region
	ctx       context.Context
	threadNum int
}

// ThreadNum returns this worker's 0-based index; index 0 is the
// coordinator.  The index is fixed for the region's lifetime.
func (w *Worker) ThreadNum() int {
	return w.threadNum
}

// NumThreads returns the region's resolved worker count.
func (w *Worker) NumThreads() int {
	return w.region.numThreads
}

// RegionID returns the region's opaque identifier.
func (w *Worker) RegionID() string {
	return w.region.id
}

// Lock returns the region-scoped mutex.
func (w *Worker) Lock() sync.Locker {
	return w.region.lock
}

// Range returns this worker's contiguous chunk of the index range described
// by bounds (stop | start,stop | start,stop,step), the static schedule.  It
// is deterministic: repeated calls yield the same chunk.  Invalid bounds
// are a programming error and panic.
func (w *Worker) Range(bounds ...int) []int {
	chunk, err := schedule.Static(w.region.numThreads, w.threadNum, bounds...)
	if err != nil {
		panic(err)
	}
	return chunk
}

// DynRange returns a lazy, finite, non-restartable sequence of work items
// claimed on demand from the region's shared queue, the dynamic schedule.
// Each call starts a new dynamic loop; calling it repeatedly within one
// body is safe, retaining the sequence past the region's exit is not.
// Invalid bounds are a programming error and panic.
func (w *Worker) DynRange(bounds ...int) iter.Seq[int] {
	seq, err := w.region.dynamic.Loop(w.ctx, w.threadNum, bounds...)
	if err != nil {
		panic(err)
	}
	return func(yield func(int) bool) {
		for item := range seq {
			progress.UpdateCtx(w.ctx, progress.Delta{Claimed: 1})
			if !yield(item) {
				return
			}
		}
	}
}
