package shared

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// Lock is a plain mutex allocated from a Manager.  It implements
// sync.Locker.
type Lock struct {
	mu sync.Mutex
}

// Lock acquires the lock.
func (l *Lock) Lock() { l.mu.Lock() }

// Unlock releases the lock.
func (l *Lock) Unlock() { l.mu.Unlock() }

// RLock is a reentrant mutex: the goroutine holding it may acquire it again
// without deadlocking.  It implements sync.Locker.
type RLock struct {
	inner sync.Mutex
	owner atomic.Int64
	count int
}

// Lock acquires the lock, or increments the hold count when the calling
// goroutine already owns it.
func (l *RLock) Lock() {
	gid := goroutineID()
	if l.owner.Load() == gid {
		l.count++
		return
	}
	l.inner.Lock()
	l.owner.Store(gid)
	l.count = 1
}

// Unlock releases one hold; the lock is freed once every nested acquisition
// has been released.
func (l *RLock) Unlock() {
	gid := goroutineID()
	if l.owner.Load() != gid {
		panic("shared: unlock of RLock not held by calling goroutine")
	}
	l.count--
	if l.count == 0 {
		l.owner.Store(0)
		l.inner.Unlock()
	}
}

// goroutineID extracts the numeric id from the first stack header line,
// "goroutine N [running]".
func goroutineID() int64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if idx := bytes.IndexByte(buf, ' '); idx > 0 {
		if id, err := strconv.ParseInt(string(buf[:idx]), 10, 64); err == nil {
			return id
		}
	}
	return -1
}
