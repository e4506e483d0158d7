package infrastructure

import (
	"fmt"

	"partybets/domain/events"
)

// NATS subjects for party events
const (
	SubjectBetCreated       = "bets.created"
	SubjectWagerPlaced      = "bets.wager_placed"
	SubjectBetStatusChanged = "bets.state_changed"
	SubjectBetSettled       = "bets.settled"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeBetCreated:
		return SubjectBetCreated
	case events.EventTypeWagerPlaced:
		return SubjectWagerPlaced
	case events.EventTypeBetStatusChanged:
		return SubjectBetStatusChanged
	case events.EventTypeBetSettled:
		return SubjectBetSettled
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case SubjectBetCreated:
		return events.EventTypeBetCreated
	case SubjectWagerPlaced:
		return events.EventTypeWagerPlaced
	case SubjectBetStatusChanged:
		return events.EventTypeBetStatusChanged
	case SubjectBetSettled:
		return events.EventTypeBetSettled
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		SubjectBetCreated,
		SubjectWagerPlaced,
		SubjectBetStatusChanged,
		SubjectBetSettled,
	}
}
