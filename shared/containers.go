package shared

import (
	"sync"
)

// List is a mutex-guarded growable sequence shared between workers.
type List[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewList allocates a shared list from the manager.
func NewList[T any](m *Manager) (*List[T], error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	return &List[T]{}, nil
}

// Append adds items to the end of the list.
func (l *List[T]) Append(items ...T) {
	l.mu.Lock()
	l.items = append(l.items, items...)
	l.mu.Unlock()
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// At returns the item at index i.
func (l *List[T]) At(i int) T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items[i]
}

// Items returns a copy of the list content.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Dict is a mutex-guarded map shared between workers.
type Dict[K comparable, V any] struct {
	mu    sync.Mutex
	items map[K]V
}

// NewDict allocates a shared dict from the manager.
func NewDict[K comparable, V any](m *Manager) (*Dict[K, V], error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	return &Dict[K, V]{items: map[K]V{}}, nil
}

// Put stores value under key.
func (d *Dict[K, V]) Put(key K, value V) {
	d.mu.Lock()
	d.items[key] = value
	d.mu.Unlock()
}

// Get returns the value stored under key.
func (d *Dict[K, V]) Get(key K) (V, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	value, ok := d.items[key]
	return value, ok
}

// Delete removes key.
func (d *Dict[K, V]) Delete(key K) {
	d.mu.Lock()
	delete(d.items, key)
	d.mu.Unlock()
}

// Len returns the number of entries.
func (d *Dict[K, V]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// Keys returns the stored keys in unspecified order.
func (d *Dict[K, V]) Keys() []K {
	d.mu.Lock()
	defer d.mu.Unlock()
	keys := make([]K, 0, len(d.items))
	for k := range d.items {
		keys = append(keys, k)
	}
	return keys
}

// Queue is a mutex-guarded FIFO shared between workers.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewQueue allocates a shared queue from the manager.
func NewQueue[T any](m *Manager) (*Queue[T], error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	return &Queue[T]{}, nil
}

// Put appends an item to the queue.
func (q *Queue[T]) Put(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
}

// Get removes and returns the oldest item; ok is false when the queue is
// empty.
func (q *Queue[T]) Get() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return item, false
	}
	item = q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
