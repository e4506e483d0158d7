package infrastructure

import (
	"context"

	"partybets/domain/events"
	"partybets/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// NATSTransactionalPublisher holds events until flush, then hands them to the real publisher.
// Flush is called after the database transaction commits; Discard on rollback.
type NATSTransactionalPublisher struct {
	realPublisher interfaces.EventPublisher
	pending       []events.Event
}

// NewNATSTransactionalPublisher creates a new transactional publisher
func NewNATSTransactionalPublisher(realPublisher interfaces.EventPublisher) *NATSTransactionalPublisher {
	return &NATSTransactionalPublisher{
		realPublisher: realPublisher,
		pending:       make([]events.Event, 0),
	}
}

// Publish stores an event in the pending queue without immediately publishing
func (p *NATSTransactionalPublisher) Publish(event events.Event) error {
	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"pendingCount": len(p.pending),
	}).Debug("Adding event to transactional publisher pending queue")

	p.pending = append(p.pending, event)
	return nil
}

// Flush publishes all pending events in the order they were queued
func (p *NATSTransactionalPublisher) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(p.pending),
	}).Debug("Flushing pending events from transactional publisher")

	for _, event := range p.pending {
		if err := p.realPublisher.Publish(event); err != nil {
			// The transaction is already committed; a failed event must not block the rest
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"partyID":   event.Scope(),
				"error":     err,
			}).Error("Failed to publish event during flush")
		}
	}

	p.pending = p.pending[:0]
	return nil
}

// Discard clears all pending events without publishing them
func (p *NATSTransactionalPublisher) Discard() {
	log.WithFields(log.Fields{
		"discardedEventCount": len(p.pending),
	}).Debug("Discarding pending events from transactional publisher")

	p.pending = p.pending[:0]
}

// PendingCount returns the number of events waiting for a flush
func (p *NATSTransactionalPublisher) PendingCount() int {
	return len(p.pending)
}
