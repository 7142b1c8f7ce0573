package parallel

import "sync"

// globalState is the process-wide bookkeeping every region shares: how many
// workers are currently active and how deep region nesting currently is.
// It is initialised once per program run; the active count starts at 1 for
// the calling process itself.  All mutation happens around region entry and
// exit, never mid-body, under a single mutex so that the thread-limit
// read-modify-write is atomic across concurrently entering regions.
type globalState struct {
	mu     sync.Mutex
	active int
	level  int
}

var global = &globalState{active: 1}

// depth returns the current nesting level.
func (g *globalState) depth() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.level
}

// reserve clamps requested against the thread limit (limit 0 = unlimited),
// books the resulting workers and increments the nesting level.  The
// effective count never drops below 1.
func (g *globalState) reserve(requested, limit int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	effective := requested
	if limit > 0 {
		if available := limit - g.active + 1; available < effective {
			effective = available
		}
		if effective < 1 {
			effective = 1
		}
	}
	g.active += effective - 1
	g.level++
	return effective
}

// release returns spawned workers to the pool and decrements the nesting
// level.
func (g *globalState) release(spawned int) {
	g.mu.Lock()
	g.active -= spawned
	g.level--
	g.mu.Unlock()
}
