package shared

import (
	"errors"
	"sync"
)

// ErrStaleManager is returned when allocating from a manager that has been
// superseded by Reset.
var ErrStaleManager = errors.New("shared: manager is stale")

var (
	defaultMu      sync.Mutex
	defaultManager = newManager(1)
)

// Manager owns the shared coordination backend.  It is valid from its
// creation until Reset installs a successor; containers allocated before
// that point keep working, but a stale manager refuses new allocations.
type Manager struct {
	generation int

	mu    sync.Mutex
	stale bool

	printLock *Lock
}

func newManager(generation int) *Manager {
	return &Manager{generation: generation, printLock: &Lock{}}
}

// Default returns the current process-wide manager.
func Default() *Manager {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultManager
}

// Reset marks the current default manager stale and installs a fresh one.
// Region coordinators call it after all workers have joined so that the next
// region starts from a clean backend.
func Reset() *Manager {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultManager.markStale()
	defaultManager = newManager(defaultManager.generation + 1)
	return defaultManager
}

// Generation returns the manager's creation ordinal; it increases with every
// Reset.
func (m *Manager) Generation() int {
	return m.generation
}

// Stale reports whether the manager has been superseded.
func (m *Manager) Stale() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stale
}

func (m *Manager) markStale() {
	m.mu.Lock()
	m.stale = true
	m.mu.Unlock()
}

func (m *Manager) guard() error {
	if m.Stale() {
		return ErrStaleManager
	}
	return nil
}

// Lock allocates a mutex visible to all workers of a region.
func (m *Manager) Lock() (*Lock, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	return &Lock{}, nil
}

// RLock allocates a reentrant mutex visible to all workers of a region.
func (m *Manager) RLock() (*RLock, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	return &RLock{}, nil
}

// PrintLock returns the manager-wide lock serializing synchronized output.
func (m *Manager) PrintLock() *Lock {
	return m.printLock
}
