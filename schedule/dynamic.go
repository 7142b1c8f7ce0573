package schedule

import (
	"context"
	"iter"
	"log"
	"sync"

	"github.com/viant/parallel/service/messaging"
)

// Dynamic produces queue-backed, on-demand work distribution across a fixed
// set of workers.  It keeps one monotonically increasing loop id per worker
// plus a shared work queue; together these allow several successive dynamic
// loops inside one region body without items of one loop leaking into the
// next, even when workers reach loop boundaries at different times.
//
// All bookkeeping happens in short critical sections under a single mutex;
// the mutex is never held while a worker processes an item.
type Dynamic struct {
	mu      sync.Mutex
	loopIDs []int
	pending []int
	queue   messaging.SyncQueue[int]
}

// NewDynamic creates the dynamic schedule state for numThreads workers.
// The loop-id slots are fixed at creation; concurrent resizing of shared
// bookkeeping is deliberately impossible.
func NewDynamic(numThreads int, queue messaging.SyncQueue[int]) *Dynamic {
	loopIDs := make([]int, numThreads)
	for i := range loopIDs {
		loopIDs[i] = -1
	}
	return &Dynamic{loopIDs: loopIDs, queue: queue}
}

// Loop registers worker threadNum as having entered its next dynamic loop
// and returns a lazy, finite, non-restartable sequence of that loop's items.
//
// The first worker to reach a given loop stages the full expanded range;
// every other worker joining the same loop claims from the shared state it
// finds.  Once any worker advances past a loop, the loop
// is retired: remaining queued items are abandoned in favour of strict
// isolation between successive loops.
func (d *Dynamic) Loop(ctx context.Context, threadNum int, bounds ...int) (iter.Seq[int], error) {
	start, stop, step, err := normalizeBounds(bounds)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	frontier := d.frontier()
	d.loopIDs[threadNum]++
	loopID := d.loopIDs[threadNum]
	if frontier < loopID {
		// No worker has reached this loop yet; this worker alone stages the
		// expanded range.  Items move into the bounded queue one at a time as
		// they are claimed, so an arbitrarily large range cannot overrun the
		// queue buffer.
		for i, n := 0, rangeLen(start, stop, step); i < n; i++ {
			d.pending = append(d.pending, start+i*step)
		}
	}
	d.mu.Unlock()

	return func(yield func(int) bool) {
		for {
			item, ok := d.next(ctx, loopID)
			if !ok {
				return
			}
			if !yield(item) {
				return
			}
		}
	}, nil
}

// next claims one item for a worker participating in loop loopID.
func (d *Dynamic) next(ctx context.Context, loopID int) (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Some worker already advanced past this loop: it is retired.  Staged
	// items are left in place; the next loop generation claims them.
	if d.frontier() > loopID {
		return 0, false
	}
	msg, err := d.queue.Poll(ctx)
	if err != nil {
		log.Printf("dynamic schedule: failed to poll work queue: %v", err)
		return 0, false
	}
	if msg == nil && len(d.pending) > 0 {
		item := d.pending[0]
		d.pending = d.pending[1:]
		if err := d.queue.Publish(ctx, &item); err != nil {
			log.Printf("dynamic schedule: failed to publish work item: %v", err)
			return 0, false
		}
		if msg, err = d.queue.Poll(ctx); err != nil {
			log.Printf("dynamic schedule: failed to poll work queue: %v", err)
			return 0, false
		}
	}
	if msg == nil {
		return 0, false
	}
	item := *msg.T()
	if err := msg.Ack(); err != nil {
		log.Printf("dynamic schedule: failed to ack work item: %v", err)
	}
	return item, true
}

// frontier returns the highest loop id any worker has reached.  Callers must
// hold d.mu.
func (d *Dynamic) frontier() int {
	frontier := d.loopIDs[0]
	for _, id := range d.loopIDs[1:] {
		if id > frontier {
			frontier = id
		}
	}
	return frontier
}
