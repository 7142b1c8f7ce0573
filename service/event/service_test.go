package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/parallel/service/messaging"
)

type regionEvent struct {
	Type      string
	ThreadNum int
}

func TestPublishConsume(t *testing.T) {
	svc, err := New(messaging.VendorMemory)
	require.NoError(t, err)

	publisher, err := PublisherOf[regionEvent](svc)
	require.NoError(t, err)

	ctx := context.Background()
	err = publisher.Publish(ctx, NewEvent(&Context{RegionID: "r1", ThreadNum: 1, EventType: "worker.done"},
		regionEvent{Type: "worker.done", ThreadNum: 1}))
	require.NoError(t, err)

	received, err := publisher.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r1", received.Context.RegionID)
	assert.Equal(t, 1, received.Data.ThreadNum)
	assert.False(t, received.CreatedAt.IsZero())
}

func TestTypedListener(t *testing.T) {
	svc, err := New(messaging.VendorMemory)
	require.NoError(t, err)

	var mu sync.Mutex
	var seen []regionEvent
	err = SetListenerOf(svc, func(e *Event[regionEvent]) {
		mu.Lock()
		seen = append(seen, e.Data)
		mu.Unlock()
	})
	require.NoError(t, err)

	publisher, err := PublisherOf[regionEvent](svc)
	require.NoError(t, err)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		err = publisher.Publish(ctx, NewEvent(&Context{EventType: "worker.done", ThreadNum: i},
			regionEvent{Type: "worker.done", ThreadNum: i}))
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 3
	}, time.Second, 10*time.Millisecond)
}

func TestUnsupportedVendor(t *testing.T) {
	_, err := New(messaging.Vendor("carrier-pigeon"))
	assert.Error(t, err)
}

func TestFsVendorRequiresConfig(t *testing.T) {
	_, err := New(messaging.VendorFS)
	assert.Error(t, err)
}
