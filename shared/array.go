package shared

import (
	"fmt"
	"sync"
)

// Array is a fixed-shape, row-major array shared between workers.  Element
// access is mutex-guarded; compound read-modify-write sequences still need an
// explicit lock held by the caller.
type Array[T any] struct {
	mu    sync.RWMutex
	shape []int
	data  []T
}

// NewArray allocates a zeroed shared array of the given shape from the
// manager.
func NewArray[T any](m *Manager, shape ...int) (*Array[T], error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("shared: array shape must not be empty")
	}
	total := 1
	for _, dim := range shape {
		if dim <= 0 {
			return nil, fmt.Errorf("shared: array dimensions must be positive, got %v", shape)
		}
		total *= dim
	}
	return &Array[T]{
		shape: append([]int(nil), shape...),
		data:  make([]T, total),
	}, nil
}

// Shape returns a copy of the array's dimensions.
func (a *Array[T]) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Len returns the total number of elements.
func (a *Array[T]) Len() int {
	return len(a.data)
}

// At returns the element at the given indices.
func (a *Array[T]) At(indices ...int) T {
	offset := a.offset(indices)
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.data[offset]
}

// Set stores value at the given indices.
func (a *Array[T]) Set(value T, indices ...int) {
	offset := a.offset(indices)
	a.mu.Lock()
	a.data[offset] = value
	a.mu.Unlock()
}

// Fill sets every element to value.
func (a *Array[T]) Fill(value T) {
	a.mu.Lock()
	for i := range a.data {
		a.data[i] = value
	}
	a.mu.Unlock()
}

// Items returns a copy of the flat, row-major content.
func (a *Array[T]) Items() []T {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]T, len(a.data))
	copy(out, a.data)
	return out
}

func (a *Array[T]) offset(indices []int) int {
	if len(indices) != len(a.shape) {
		panic(fmt.Sprintf("shared: expected %d indices, got %d", len(a.shape), len(indices)))
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= a.shape[i] {
			panic(fmt.Sprintf("shared: index %d out of range [0,%d)", idx, a.shape[i]))
		}
		offset = offset*a.shape[i] + idx
	}
	return offset
}
