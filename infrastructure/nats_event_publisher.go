package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"partybets/domain/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// EventEnvelope wraps every event published to NATS
type EventEnvelope struct {
	EventID       string          `json:"eventId"`
	EventType     string          `json:"eventType"`
	PartyID       int64           `json:"partyId"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"sourceService"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSEventPublisher publishes events to NATS after running local handlers
type NATSEventPublisher struct {
	natsClient    *NATSClient
	subjectMapper *EventSubjectMapper
	local         *LocalEventPublisher
}

// NewNATSEventPublisher creates a new NATS event publisher
func NewNATSEventPublisher(natsClient *NATSClient, subjectMapper *EventSubjectMapper) *NATSEventPublisher {
	return &NATSEventPublisher{
		natsClient:    natsClient,
		subjectMapper: subjectMapper,
		local:         NewLocalEventPublisher(),
	}
}

// Publish publishes an event to NATS using the appropriate subject
func (p *NATSEventPublisher) Publish(event events.Event) error {
	ctx := context.Background()

	// Local handlers run first and never block NATS publishing
	_ = p.local.Publish(event)

	subject := p.subjectMapper.MapEventToSubject(event)

	envelope, err := NewEventEnvelope(event)
	if err != nil {
		return err
	}

	envelopeData, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := p.natsClient.Publish(ctx, subject, envelopeData); err != nil {
		if strings.Contains(err.Error(), "no response from stream") {
			log.WithField("subject", subject).Warn("No stream bound to subject, event dropped")
			return nil
		}
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Successfully published event to NATS")

	return nil
}

// NewEventEnvelope serializes an event into a fresh envelope
func NewEventEnvelope(event events.Event) (*EventEnvelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	return &EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		PartyID:       event.Scope(),
		Timestamp:     time.Now().UTC(),
		SourceService: clientName,
		Payload:       payload,
	}, nil
}

// RegisterLocalHandler registers a handler that will be invoked locally for events
func (p *NATSEventPublisher) RegisterLocalHandler(eventType events.EventType, handler func(context.Context, events.Event) error) {
	p.local.RegisterLocalHandler(eventType, handler)
}

// EnsurePartyEventStream ensures the party_events stream exists with the correct subjects
func (p *NATSEventPublisher) EnsurePartyEventStream() error {
	return p.natsClient.ensureStream(PartyEventStream, p.subjectMapper.GetAllSubjects())
}
