package parallel

import (
	"fmt"
)

// Print writes args as one line to the region's output writer while holding
// the backend-wide print lock, so concurrent writes from different workers
// never interleave.  The writer is flushed before the lock is released when
// it supports flushing.
func (w *Worker) Print(args ...interface{}) {
	w.synchronized(func() {
		fmt.Fprintln(w.region.printW, args...)
	})
}

// Printf is Print with a format string; a trailing newline is appended.
func (w *Worker) Printf(format string, args ...interface{}) {
	w.synchronized(func() {
		fmt.Fprintf(w.region.printW, format+"\n", args...)
	})
}

func (w *Worker) synchronized(write func()) {
	lock := w.region.manager.PrintLock()
	lock.Lock()
	defer lock.Unlock()
	write()
	type syncer interface{ Sync() error }
	type flusher interface{ Flush() error }
	switch target := w.region.printW.(type) {
	case flusher:
		_ = target.Flush()
	case syncer:
		_ = target.Sync()
	}
}
