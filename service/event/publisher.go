package event

import (
	"context"

	"github.com/viant/parallel/internal/clock"
	"github.com/viant/parallel/service/messaging"
)

// Publisher publishes typed events; every event is mirrored onto the
// service-wide any-typed queue so that a single listener can observe all
// event types.
type Publisher[T any] struct {
	queue    messaging.Queue[Event[T]]
	anyQueue messaging.Queue[Event[any]]
}

// NewPublisher creates a publisher backed by the supplied queue.
func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{queue: queue}
}

// Publish stamps and enqueues the event.
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	event.CreatedAt = clock.Now()
	if p.anyQueue != nil {
		_ = p.anyQueue.Publish(ctx, &Event[any]{
			Context:   event.Context,
			CreatedAt: event.CreatedAt,
			Metadata:  event.Metadata,
			Data:      event.Data,
		})
	}
	return p.queue.Publish(ctx, event)
}

// Consume retrieves the next event, blocking until one is available or ctx
// is done.
func (p *Publisher[T]) Consume(ctx context.Context) (*Event[T], error) {
	message, err := p.queue.Consume(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = message.Ack() }()
	return message.T(), nil
}
