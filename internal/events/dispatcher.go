package events

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// EventHandler consumes a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher decouples task mutations from their observers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

type memoryDispatcher struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
}

// NewInMemoryDispatcher returns a synchronous in-process dispatcher. Handlers
// run on the publishing goroutine; a failing handler does not stop the others.
func NewInMemoryDispatcher() Dispatcher {
	return &memoryDispatcher{handlers: make(map[EventType][]EventHandler)}
}

func (d *memoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := slices.Clone(d.handlers[event.Type])
	d.mu.RUnlock()

	var errs []error
	for _, handle := range handlers {
		if err := handle(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *memoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}
