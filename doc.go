// Package parallel provides structured parallel regions with OpenMP-style
// static and dynamic work scheduling.
//
// A region executes one body function concurrently on a fixed set of workers.
// Worker 0 (the coordinator) runs on the calling goroutine; the remaining
// workers are spawned at entry and joined at exit.  Inside the body each
// worker obtains its identity and its share of work through the *Worker view:
//
//	region := parallel.New(parallel.WithNumThreads(4))
//	err := region.Run(ctx, func(ctx context.Context, w *parallel.Worker) error {
//	    for _, i := range w.Range(1000) {       // static schedule
//	        process(i)
//	    }
//	    for i := range w.DynRange(400) {        // dynamic schedule
//	        process(i)
//	    }
//	    return nil
//	})
//
// Worker faults (returned errors and recovered panics) never cross a worker
// boundary with their original identity: each is recorded, logged after all
// workers have joined, and folded into a single ErrRegionFailed returned by
// Run.  Shared containers for use inside a region are provided by the shared
// sub-package; thread counts, nesting and the process-wide thread limit are
// configured through the config sub-package or per call via policy.
package parallel
