package infrastructure

import (
	"context"
	"sync"

	"partybets/domain/events"

	log "github.com/sirupsen/logrus"
)

// LocalEventPublisher dispatches events to handlers registered in this process.
// It is used on its own when NATS is not configured.
type LocalEventPublisher struct {
	mu       sync.RWMutex
	handlers map[events.EventType][]func(context.Context, events.Event) error
}

// NewLocalEventPublisher creates a publisher with no handlers
func NewLocalEventPublisher() *LocalEventPublisher {
	return &LocalEventPublisher{
		handlers: make(map[events.EventType][]func(context.Context, events.Event) error),
	}
}

// Publish invokes every handler registered for the event type.
// Handler errors are logged and do not stop the remaining handlers.
func (p *LocalEventPublisher) Publish(event events.Event) error {
	ctx := context.Background()
	eventType := event.Type()

	p.mu.RLock()
	handlers := make([]func(context.Context, events.Event) error, len(p.handlers[eventType]))
	copy(handlers, p.handlers[eventType])
	p.mu.RUnlock()

	for _, handler := range handlers {
		log.WithFields(log.Fields{
			"eventType": eventType,
			"partyID":   event.Scope(),
		}).Debug("Invoking local handler for event")

		if err := handler(ctx, event); err != nil {
			log.WithFields(log.Fields{
				"eventType": eventType,
				"error":     err,
			}).Error("Local event handler failed")
		}
	}

	return nil
}

// RegisterLocalHandler registers a handler for an event type
func (p *LocalEventPublisher) RegisterLocalHandler(eventType events.EventType, handler func(context.Context, events.Event) error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.handlers[eventType] = append(p.handlers[eventType], handler)
	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(p.handlers[eventType]),
	}).Info("Registered local event handler")
}
