package parallel

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/parallel/service/messaging"
	"github.com/viant/parallel/service/messaging/memory"
)

// Fault describes one worker failure: the fault kind (error type or
// "panic"), its message and the index of the worker it occurred in.
type Fault struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	ThreadNum int    `json:"threadNum"`
}

func (f Fault) String() string {
	return fmt.Sprintf("worker %d: %s: %s", f.ThreadNum, f.Kind, f.Message)
}

// panicError carries a recovered panic value across the worker boundary.
type panicError struct {
	value interface{}
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// faultOf converts a worker error into its recorded fault.
func faultOf(err error, threadNum int) Fault {
	if pe, ok := err.(*panicError); ok {
		return Fault{Kind: "panic", Message: fmt.Sprint(pe.value), ThreadNum: threadNum}
	}
	return Fault{Kind: fmt.Sprintf("%T", err), Message: err.Error(), ThreadNum: threadNum}
}

// faultCollector aggregates per-worker faults in a shared queue.  Recording
// happens in the failing worker under the exception lock; draining happens
// in the coordinator after every worker has joined.
type faultCollector struct {
	mu    sync.Mutex
	queue messaging.SyncQueue[Fault]
}

func newFaultCollector() *faultCollector {
	return &faultCollector{queue: memory.NewQueue[Fault](memory.DefaultConfig())}
}

func (c *faultCollector) record(ctx context.Context, fault Fault) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.queue.Publish(ctx, &fault)
}

func (c *faultCollector) drain(ctx context.Context) []Fault {
	c.mu.Lock()
	defer c.mu.Unlock()
	var faults []Fault
	for {
		msg, err := c.queue.Poll(ctx)
		if err != nil || msg == nil {
			return faults
		}
		faults = append(faults, *msg.T())
		_ = msg.Ack()
	}
}
