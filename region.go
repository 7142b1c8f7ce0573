package parallel

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/viant/parallel/config"
	"github.com/viant/parallel/internal/idgen"
	"github.com/viant/parallel/policy"
	"github.com/viant/parallel/progress"
	"github.com/viant/parallel/schedule"
	"github.com/viant/parallel/service/event"
	"github.com/viant/parallel/service/messaging"
	"github.com/viant/parallel/service/messaging/memory"
	"github.com/viant/parallel/shared"
	"github.com/viant/parallel/tracing"
)

// Body is the function every worker of a region executes.  It receives a
// context carrying the region span and the calling worker's view.  A
// returned error is recorded as that worker's fault; it never cancels
// sibling workers.
type Body func(ctx context.Context, w *Worker) error

// Region is a scoped block of code executed concurrently by a fixed set of
// workers.  A Region may be entered at most once; create a new one for each
// parallel section.
type Region struct {
	requested int
	cfg       *config.Config
	events    *event.Service
	printW    io.Writer
	workQueue messaging.SyncQueue[int]

	id         string
	entered    atomic.Bool
	numThreads int
	spawned    int
	manager    *shared.Manager
	lock       *shared.Lock
	dynamic    *schedule.Dynamic
	faults     *faultCollector
}

// New creates a region; the thread count and all other settings are resolved
// at entry, not at construction.
func New(options ...Option) *Region {
	r := &Region{printW: os.Stdout}
	for _, option := range options {
		option(r)
	}
	return r
}

// Run enters the region, executes body on every worker and exits it,
// returning an entry error or the aggregated failure of the region's
// workers.
func Run(ctx context.Context, body Body, options ...Option) error {
	return New(options...).Run(ctx, body)
}

// Run enters the region on the calling goroutine as worker 0, spawns
// numThreads-1 additional workers, executes body on each, then joins all
// workers and surfaces their faults as a single aggregated error.
func (r *Region) Run(ctx context.Context, body Body) (err error) {
	if body == nil {
		return fmt.Errorf("parallel: body cannot be nil")
	}
	if !r.entered.CompareAndSwap(false, true) {
		return ErrRegionReused
	}

	cfg := r.cfg
	if cfg == nil {
		cfg = config.Default()
	}
	cfg = policy.FromContext(ctx).Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrThreadConfig, err)
	}

	depth := global.depth()
	requested, err := r.resolveNumThreads(cfg, depth)
	if err != nil {
		return err
	}
	if depth > 0 && !cfg.Nested {
		return fmt.Errorf("%w (entry at depth %d)", ErrNestingDisabled, depth)
	}

	// The clamp against the thread limit and the active-worker increment are
	// one atomic step across all concurrently entering regions.
	r.numThreads = global.reserve(requested, cfg.ThreadLimit)
	r.spawned = r.numThreads - 1
	r.id = idgen.New()

	// Stale handles inherited from a previous region must not be reused:
	// always bind to the current backend.
	r.manager = shared.Default()
	lock, err := r.manager.Lock()
	if err != nil {
		global.release(r.spawned)
		return err
	}
	r.lock = lock

	queue := r.workQueue
	if queue == nil {
		queue = memory.NewQueue[int](memory.DefaultConfig())
	}
	r.dynamic = schedule.NewDynamic(r.numThreads, queue)
	r.faults = newFaultCollector()

	ctx, span := tracing.StartSpan(ctx, "parallel.region", "INTERNAL")
	span.WithAttributes(map[string]string{
		"region.id":      r.id,
		"region.threads": strconv.Itoa(r.numThreads),
		"region.depth":   strconv.Itoa(depth),
	})
	r.publishEvent(ctx, EventRegionEnter, 0, nil)
	progress.UpdateCtx(ctx, progress.Delta{Workers: r.numThreads})

	var wg sync.WaitGroup
	for threadNum := 1; threadNum < r.numThreads; threadNum++ {
		wg.Add(1)
		go func(threadNum int) {
			defer wg.Done()
			r.runWorker(ctx, threadNum, body)
		}(threadNum)
	}
	// The coordinator participates as worker 0 and records its own fault
	// before joining the others.
	r.runWorker(ctx, 0, body)
	wg.Wait()

	global.release(r.spawned)
	shared.Reset()

	faults := r.faults.drain(ctx)
	for _, fault := range faults {
		log.Printf("parallel: %s", fault)
	}
	if len(faults) > 0 {
		err = fmt.Errorf("%w (%d worker fault(s))", ErrRegionFailed, len(faults))
	}
	r.publishEvent(ctx, EventRegionExit, 0, nil)
	tracing.EndSpan(span, err)
	return err
}

// resolveNumThreads applies the precedence: explicit request, single
// configured value at any depth, per-depth configured list.
func (r *Region) resolveNumThreads(cfg *config.Config, depth int) (int, error) {
	if r.requested != 0 {
		if r.requested < 1 {
			return 0, fmt.Errorf("%w: requested %d", ErrThreadConfig, r.requested)
		}
		return r.requested, nil
	}
	list := cfg.NumThreads
	switch {
	case len(list) == 1:
		return list[0], nil
	case depth < len(list):
		return list[depth], nil
	default:
		return 0, fmt.Errorf("%w: no entry for nesting depth %d in %v", ErrThreadConfig, depth, list)
	}
}

// runWorker executes body as the given worker and records its outcome.  A
// faulting worker stops here: the fault is recorded and the goroutine
// terminates without further cleanup, it never reaches the join logic.
func (r *Region) runWorker(ctx context.Context, threadNum int, body Body) {
	wctx, span := tracing.StartSpan(ctx, fmt.Sprintf("parallel.worker %d", threadNum), "INTERNAL")
	span.WithAttributes(map[string]string{"worker.threadNum": strconv.Itoa(threadNum)})

	err := r.execute(wctx, threadNum, body)
	if err != nil {
		fault := faultOf(err, threadNum)
		r.faults.record(ctx, fault)
		r.publishEvent(ctx, EventWorkerFault, threadNum, &fault)
		progress.UpdateCtx(ctx, progress.Delta{Faulted: 1})
	} else {
		r.publishEvent(ctx, EventWorkerDone, threadNum, nil)
		progress.UpdateCtx(ctx, progress.Delta{Completed: 1})
	}
	tracing.EndSpan(span, err)
}

// execute runs body with panic containment: a panicking worker cannot take
// its siblings down.
func (r *Region) execute(ctx context.Context, threadNum int, body Body) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &panicError{value: rec}
		}
	}()
	return body(ctx, &Worker{region: r, ctx: ctx, threadNum: threadNum})
}
