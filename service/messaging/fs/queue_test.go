package fs

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
)

type testPayload struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func TestQueue(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "queue-test")
	if err != nil {
		t.Fatalf("failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	fs := afs.New()
	ctx := context.Background()

	config := Config{
		BasePath:   tempDir,
		MaxRetries: 2,
		RetryDelay: 10 * time.Millisecond,
	}
	queue, err := NewQueue[testPayload](fs, config)
	assert.NoError(t, err)
	assert.NotNil(t, queue)

	for _, dir := range []string{queue.pendingDir, queue.processingDir, queue.completedDir, queue.failedDir, queue.dlqDir} {
		exists, err := fs.Exists(ctx, dir)
		assert.NoError(t, err)
		assert.True(t, exists, fmt.Sprintf("directory %s should exist", dir))
	}

	payloads := []testPayload{
		{ID: "1", Value: 1},
		{ID: "2", Value: 2},
		{ID: "3", Value: 3},
	}
	for i := range payloads {
		err := queue.Publish(ctx, &payloads[i])
		assert.NoError(t, err)
	}

	size, err := queue.Size(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 3, size)

	seen := map[string]bool{}
	for range payloads {
		message, err := queue.Consume(ctx)
		assert.NoError(t, err)
		assert.NotNil(t, message)
		seen[message.T().ID] = true
		assert.NoError(t, message.Ack())
	}
	assert.Equal(t, 3, len(seen))

	size, err = queue.Size(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, size)
}

func TestQueuePollEmpty(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "queue-test")
	if err != nil {
		t.Fatalf("failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	config := DefaultConfig()
	config.BasePath = tempDir
	queue, err := NewQueue[testPayload](afs.New(), config)
	assert.NoError(t, err)

	message, err := queue.Poll(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, message)
}

func TestQueueNackRetry(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "queue-test")
	if err != nil {
		t.Fatalf("failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	ctx := context.Background()
	config := Config{
		BasePath:   tempDir,
		MaxRetries: 1,
		RetryDelay: 10 * time.Millisecond,
	}
	queue, err := NewQueue[testPayload](afs.New(), config)
	assert.NoError(t, err)

	payload := testPayload{ID: "retry", Value: 1}
	assert.NoError(t, queue.Publish(ctx, &payload))

	// First attempt fails, message lands in the failed directory
	message, err := queue.Poll(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.NoError(t, message.Nack(fmt.Errorf("transient")))

	// After the retry delay the message is picked up ahead of pending ones
	time.Sleep(2 * config.RetryDelay)
	message, err = queue.Poll(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, "retry", message.T().ID)
	assert.NoError(t, message.Ack())
}
