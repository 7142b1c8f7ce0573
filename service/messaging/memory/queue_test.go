package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testPayload struct {
	ID    string
	Value int
}

func TestQueue(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	payload := testPayload{ID: "item-1", Value: 42}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, 0, queue.Size())

	data := message.T()
	assert.Equal(t, payload.ID, data.ID)
	assert.Equal(t, payload.Value, data.Value)

	err = message.Ack()
	assert.NoError(t, err)

	// Double ack should error
	err = message.Ack()
	assert.Error(t, err)
}

func TestQueuePoll(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx := context.Background()

	// Empty queue: poll returns nil without blocking
	message, err := queue.Poll(ctx)
	assert.NoError(t, err)
	assert.Nil(t, message)

	payload := testPayload{ID: "item-1"}
	err = queue.Publish(ctx, &payload)
	assert.NoError(t, err)

	message, err = queue.Poll(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, "item-1", message.T().ID)

	message, err = queue.Poll(ctx)
	assert.NoError(t, err)
	assert.Nil(t, message)
}

func TestQueueRetries(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 1
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	payload := testPayload{ID: "retry-test"}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	err = message.Nack(fmt.Errorf("transient"))
	assert.NoError(t, err)

	// Message comes back after the retry delay
	time.Sleep(30 * time.Millisecond)
	message, err = queue.Poll(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)

	// Exceeding MaxRetries parks the message in the DLQ
	err = message.Nack(fmt.Errorf("permanent"))
	assert.NoError(t, err)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, 1, queue.DLQSize())
}

func TestQueueConcurrency(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx := context.Background()

	producers := 8
	perProducer := 25

	var wg sync.WaitGroup
	wg.Add(producers * 2)

	var consumedMu sync.Mutex
	consumed := 0

	for i := 0; i < producers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				message, err := queue.Consume(ctx)
				if err != nil {
					t.Errorf("consume: %v", err)
					return
				}
				assert.NoError(t, message.Ack())
				consumedMu.Lock()
				consumed++
				consumedMu.Unlock()
			}
		}()
	}
	for i := 0; i < producers; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				payload := testPayload{ID: fmt.Sprintf("p%d-m%d", id, j), Value: j}
				if err := queue.Publish(ctx, &payload); err != nil {
					t.Errorf("publish: %v", err)
					return
				}
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("test timed out")
	}

	assert.Equal(t, producers*perProducer, consumed)
	assert.Equal(t, 0, queue.Size())
}

func TestQueueContextCancellation(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := queue.Consume(ctx)
	assert.Error(t, err)

	// Queue remains usable after the context expired
	payload := testPayload{ID: "after"}
	err = queue.Publish(context.Background(), &payload)
	assert.NoError(t, err)
	message, err := queue.Consume(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, message)
}
