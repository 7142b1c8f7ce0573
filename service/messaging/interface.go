package messaging

import (
	"context"
)

// Vendor identifies a queue implementation.
type Vendor string

const (
	// VendorMemory selects the channel-backed in-memory queue.
	VendorMemory Vendor = "memory"

	// VendorFS selects the filesystem-backed queue.
	VendorFS Vendor = "fs"
)

// Queue represents an abstract message queue for any payload type
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue
	Publish(ctx context.Context, t *T) error

	// Consume retrieves a single message from the queue, blocking until one
	// is available or ctx is done
	Consume(ctx context.Context) (Message[T], error)
}

// SyncQueue extends Queue with a non-blocking receive, used by callers that
// drain a queue under an externally held lock (schedulers, fault collectors).
type SyncQueue[T any] interface {
	Queue[T]

	// Poll retrieves a single message without blocking; it returns (nil, nil)
	// when the queue is empty
	Poll(ctx context.Context) (Message[T], error)
}

// Message represents a message retrieved from a queue
type Message[T any] interface {
	// T returns the payload of this message
	T() *T

	// Ack acknowledges successful processing of this message
	Ack() error

	// Nack indicates failure in processing this message
	Nack(err error) error
}
