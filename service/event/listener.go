package event

import (
	"context"
	"errors"
	"log"
)

// Listener consumes events from a publisher on a dedicated goroutine and
// hands them to a callback.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewListener creates a listener; call Start to begin consuming.
func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Stop terminates the consuming goroutine.
func (l *Listener[T]) Stop() {
	l.cancel()
}

// Start begins consuming events until Stop is called.
func (l *Listener[T]) Start() {
	go func() {
		for {
			event, err := l.publisher.Consume(l.ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				log.Printf("event listener: failed to consume: %v", err)
				continue
			}
			l.handler(event)
		}
	}()
}
