package shared

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerReset(t *testing.T) {
	first := Default()
	assert.False(t, first.Stale())

	second := Reset()
	assert.True(t, first.Stale())
	assert.False(t, second.Stale())
	assert.Equal(t, first.Generation()+1, second.Generation())
	assert.Same(t, second, Default())

	// A stale manager refuses new allocations.
	_, err := first.Lock()
	assert.ErrorIs(t, err, ErrStaleManager)
	_, err = NewList[int](first)
	assert.ErrorIs(t, err, ErrStaleManager)

	_, err = second.Lock()
	assert.NoError(t, err)
}

func TestLockCounter(t *testing.T) {
	m := Default()
	lock, err := m.Lock()
	require.NoError(t, err)

	counter := 0
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				lock.Lock()
				counter++
				lock.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1000, counter)
}

func TestRLockReentrant(t *testing.T) {
	m := Default()
	rlock, err := m.RLock()
	require.NoError(t, err)

	list, err := NewList[float64](m)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rlock.Lock()
			rlock.Lock()
			list.Append(1.0)
			rlock.Unlock()
			rlock.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 2, list.Len())
}

func TestRLockUnlockNotOwner(t *testing.T) {
	m := Default()
	rlock, err := m.RLock()
	require.NoError(t, err)
	assert.Panics(t, func() { rlock.Unlock() })
}

func TestListConcurrentAppend(t *testing.T) {
	list, err := NewList[int](Default())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				list.Append(i)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1000, list.Len())
}

func TestDict(t *testing.T) {
	dict, err := NewDict[int, float64](Default())
	require.NoError(t, err)

	for i := 0; i < 400; i++ {
		dict.Put(i, 1.0)
	}
	assert.Equal(t, 400, dict.Len())

	value, ok := dict.Get(123)
	assert.True(t, ok)
	assert.Equal(t, 1.0, value)

	dict.Delete(123)
	_, ok = dict.Get(123)
	assert.False(t, ok)
	assert.Equal(t, 399, dict.Len())
	assert.Equal(t, 399, len(dict.Keys()))
}

func TestQueue(t *testing.T) {
	queue, err := NewQueue[int](Default())
	require.NoError(t, err)

	for i := 0; i < 400; i++ {
		queue.Put(i)
	}
	assert.Equal(t, 400, queue.Len())

	item, ok := queue.Get()
	assert.True(t, ok)
	assert.Equal(t, 0, item)
	assert.Equal(t, 399, queue.Len())
}

func TestQueueEmpty(t *testing.T) {
	queue, err := NewQueue[string](Default())
	require.NoError(t, err)
	_, ok := queue.Get()
	assert.False(t, ok)
}

func TestArray(t *testing.T) {
	array, err := NewArray[float64](Default(), 5, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 1}, array.Shape())
	assert.Equal(t, 5, array.Len())

	for i := 0; i < 5; i++ {
		array.Set(1.0, i, 0)
	}
	sum := 0.0
	for _, v := range array.Items() {
		sum += v
	}
	assert.Equal(t, 5.0, sum)

	array.Fill(2.0)
	assert.Equal(t, 2.0, array.At(3, 0))
}

func TestArrayValidation(t *testing.T) {
	_, err := NewArray[int](Default())
	assert.Error(t, err)
	_, err = NewArray[int](Default(), 2, 0)
	assert.Error(t, err)

	array, err := NewArray[int](Default(), 2, 2)
	require.NoError(t, err)
	assert.Panics(t, func() { array.At(2, 0) })
	assert.Panics(t, func() { array.At(0) })
}
