// Package fs implements a filesystem-backed messaging queue on top of
// viant/afs.  Messages are JSON files moved between state directories
// (pending, processing, completed, failed, dlq), which makes queue content
// inspectable and durable across process restarts.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/storage"
	"github.com/viant/parallel/internal/clock"
	"github.com/viant/parallel/internal/idgen"
	"github.com/viant/parallel/service/messaging"
)

// MessageState represents the state of a message in the filesystem queue
type MessageState string

const (
	// MessageStatePending indicates a message is waiting to be processed
	MessageStatePending MessageState = "pending"

	// MessageStateProcessing indicates a message is being processed
	MessageStateProcessing MessageState = "processing"

	// MessageStateCompleted indicates a message was successfully processed
	MessageStateCompleted MessageState = "completed"

	// MessageStateFailed indicates a message failed processing
	MessageStateFailed MessageState = "failed"
)

// Message implements messaging.Message for the filesystem queue
type Message[T any] struct {
	ID        string       `json:"id"`
	Data      T            `json:"data"`
	State     MessageState `json:"state"`
	Error     string       `json:"error,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Retries   int          `json:"retries"`

	queue     *Queue[T]
	processed bool
	mu        sync.Mutex
}

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.Data
}

// Ack acknowledges that the message was processed successfully
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	m.State = MessageStateCompleted
	m.UpdatedAt = clock.Now()
	return m.queue.completeMessage(context.Background(), m)
}

// Nack indicates that the message processing failed
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	m.State = MessageStateFailed
	if err != nil {
		m.Error = err.Error()
	}
	m.Retries++
	m.UpdatedAt = clock.Now()
	return m.queue.failMessage(context.Background(), m)
}

// Config holds configuration for the filesystem queue
type Config struct {
	BasePath     string        // Base directory for queue files
	MaxRetries   int           // Maximum number of retry attempts
	RetryDelay   time.Duration // Delay between retries
	PollInterval time.Duration // Delay between scans when Consume blocks
}

// DefaultConfig returns a default queue configuration
func DefaultConfig() Config {
	return Config{
		BasePath:     "/tmp/parallel/queue",
		MaxRetries:   3,
		RetryDelay:   time.Second,
		PollInterval: 50 * time.Millisecond,
	}
}

// Queue implements a filesystem-based messaging.SyncQueue
type Queue[T any] struct {
	fs            afs.Service
	config        Config
	pendingDir    string
	processingDir string
	completedDir  string
	failedDir     string
	dlqDir        string
	mu            sync.Mutex
}

// NewQueue creates a new filesystem-based queue
func NewQueue[T any](fs afs.Service, config Config) (*Queue[T], error) {
	if config.BasePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultConfig().PollInterval
	}

	q := &Queue[T]{
		fs:            fs,
		config:        config,
		pendingDir:    path.Join(config.BasePath, "pending"),
		processingDir: path.Join(config.BasePath, "processing"),
		completedDir:  path.Join(config.BasePath, "completed"),
		failedDir:     path.Join(config.BasePath, "failed"),
		dlqDir:        path.Join(config.BasePath, "dlq"),
	}

	ctx := context.Background()
	for _, dir := range []string{q.pendingDir, q.processingDir, q.completedDir, q.failedDir, q.dlqDir} {
		exists, _ := fs.Exists(ctx, dir)
		if !exists {
			if err := fs.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
				return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}
	return q, nil
}

// Publish adds a new message to the queue
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	message := &Message[T]{
		ID:        idgen.New(),
		Data:      *t,
		State:     MessageStatePending,
		CreatedAt: clock.Now(),
		UpdatedAt: clock.Now(),
		queue:     q,
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	filePath := path.Join(q.pendingDir, q.generateFilename(message.ID))
	return q.uploadMessage(ctx, filePath, data)
}

// Consume retrieves a message from the queue, blocking until one is
// available or ctx is done
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	for {
		message, err := q.Poll(ctx)
		if err != nil {
			return nil, err
		}
		if message != nil {
			return message, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(q.config.PollInterval):
		}
	}
}

// Poll retrieves a message without blocking; (nil, nil) when no message is
// pending
func (q *Queue[T]) Poll(ctx context.Context) (messaging.Message[T], error) {
	// Failed messages eligible for retry take priority
	message, err := q.checkFailedMessages(ctx)
	if err != nil {
		return nil, err
	}
	if message != nil {
		return message, nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	objects, err := q.fs.List(ctx, q.pendingDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending messages: %w", err)
	}
	pending := filterMessages(objects)
	if len(pending) == 0 {
		return nil, nil
	}

	// Claim the oldest pending message
	obj := pending[0]
	claimed, err := q.readMessageFromURL(ctx, obj.URL())
	if err != nil {
		destURL := path.Join(q.failedDir, fmt.Sprintf("invalid-%s", obj.Name()))
		_ = q.fs.Move(ctx, obj.URL(), destURL)
		return nil, err
	}
	claimed.State = MessageStateProcessing
	claimed.UpdatedAt = clock.Now()
	claimed.queue = q

	if err := q.moveMessage(ctx, claimed, path.Join(q.processingDir, obj.Name()), obj.URL()); err != nil {
		return nil, err
	}
	return claimed, nil
}

// Size returns the number of pending messages
func (q *Queue[T]) Size(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	objects, err := q.fs.List(ctx, q.pendingDir)
	if err != nil {
		return 0, err
	}
	return len(filterMessages(objects)), nil
}

// checkFailedMessages looks for failed messages eligible for retry
func (q *Queue[T]) checkFailedMessages(ctx context.Context) (*Message[T], error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	objects, err := q.fs.List(ctx, q.failedDir, option.NewRecursive(false))
	if err != nil {
		return nil, fmt.Errorf("failed to list failed messages: %w", err)
	}
	failed := filterMessages(objects)
	if len(failed) == 0 {
		return nil, nil
	}

	obj := failed[0]
	message, err := q.readMessageFromURL(ctx, obj.URL())
	if err != nil {
		destURL := path.Join(q.dlqDir, fmt.Sprintf("invalid-%s", obj.Name()))
		_ = q.fs.Move(ctx, obj.URL(), destURL)
		return nil, err
	}

	if clock.Now().Sub(message.UpdatedAt) < q.config.RetryDelay {
		return nil, nil
	}
	if message.Retries > q.config.MaxRetries {
		destURL := path.Join(q.dlqDir, obj.Name())
		if err := q.fs.Move(ctx, obj.URL(), destURL); err != nil {
			return nil, fmt.Errorf("failed to move message to DLQ: %w", err)
		}
		return nil, nil
	}

	message.State = MessageStateProcessing
	message.UpdatedAt = clock.Now()
	message.queue = q
	if err := q.moveMessage(ctx, message, path.Join(q.processingDir, obj.Name()), obj.URL()); err != nil {
		return nil, err
	}
	return message, nil
}

// completeMessage moves a message to the completed directory
func (q *Queue[T]) completeMessage(ctx context.Context, m *Message[T]) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal completed message: %w", err)
	}
	filename := q.generateFilename(m.ID)
	if err := q.uploadMessage(ctx, path.Join(q.completedDir, filename), data); err != nil {
		return fmt.Errorf("failed to write message to completed directory: %w", err)
	}
	return q.deleteIfExists(ctx, path.Join(q.processingDir, filename))
}

// failMessage handles a failed message (retry or move to DLQ)
func (q *Queue[T]) failMessage(ctx context.Context, m *Message[T]) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal failed message: %w", err)
	}
	filename := q.generateFilename(m.ID)
	destDir := q.failedDir
	if m.Retries > q.config.MaxRetries {
		destDir = q.dlqDir
	}
	if err := q.uploadMessage(ctx, path.Join(destDir, filename), data); err != nil {
		return fmt.Errorf("failed to write message to %s: %w", destDir, err)
	}
	return q.deleteIfExists(ctx, path.Join(q.processingDir, filename))
}

// moveMessage writes the updated message to destPath then removes srcURL
func (q *Queue[T]) moveMessage(ctx context.Context, m *Message[T], destPath, srcURL string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := q.uploadMessage(ctx, destPath, data); err != nil {
		return fmt.Errorf("failed to move message to %s: %w", destPath, err)
	}
	if err := q.fs.Delete(ctx, srcURL); err != nil {
		return fmt.Errorf("failed to delete message %s: %w", srcURL, err)
	}
	return nil
}

func (q *Queue[T]) deleteIfExists(ctx context.Context, location string) error {
	if exists, _ := q.fs.Exists(ctx, location); exists {
		if err := q.fs.Delete(ctx, location); err != nil {
			return fmt.Errorf("failed to delete %s: %w", location, err)
		}
	}
	return nil
}

func (q *Queue[T]) generateFilename(id string) string {
	return fmt.Sprintf("%s.json", id)
}

func (q *Queue[T]) uploadMessage(ctx context.Context, path string, data []byte) error {
	return q.fs.Upload(ctx, path, file.DefaultFileOsMode, bytes.NewBuffer(data))
}

func (q *Queue[T]) readMessageFromURL(ctx context.Context, url string) (*Message[T], error) {
	data, err := q.fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to read message %s: %w", url, err)
	}
	var message Message[T]
	if err := json.Unmarshal(data, &message); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message %s: %w", url, err)
	}
	return &message, nil
}

func filterMessages(objects []storage.Object) []storage.Object {
	var result []storage.Object
	for _, obj := range objects {
		if !obj.IsDir() && strings.HasSuffix(obj.Name(), ".json") {
			result = append(result, obj)
		}
	}
	return result
}

// ensure Queue implements messaging.SyncQueue interface
var _ messaging.SyncQueue[any] = (*Queue[any])(nil)
