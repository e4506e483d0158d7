package infrastructure

import (
	"encoding/json"
	"testing"

	"partybets/domain/entities"
	"partybets/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSubjectMapper_RoundTrip(t *testing.T) {
	mapper := NewEventSubjectMapper()

	tests := []struct {
		name    string
		event   events.Event
		subject string
	}{
		{"bet created", events.BetCreatedEvent{}, SubjectBetCreated},
		{"wager placed", events.WagerPlacedEvent{}, SubjectWagerPlaced},
		{"status changed", events.BetStatusChangedEvent{}, SubjectBetStatusChanged},
		{"bet settled", events.BetSettledEvent{}, SubjectBetSettled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject := mapper.MapEventToSubject(tt.event)
			assert.Equal(t, tt.subject, subject)
			assert.Equal(t, tt.event.Type(), mapper.MapSubjectToEventType(subject))
			assert.Contains(t, mapper.GetAllSubjects(), subject)
		})
	}
}

func TestEventSubjectMapper_UnknownSubject(t *testing.T) {
	mapper := NewEventSubjectMapper()
	assert.Equal(t, events.EventType("other.thing"), mapper.MapSubjectToEventType("other.thing"))
}

func TestNewEventEnvelope(t *testing.T) {
	event := events.BetStatusChangedEvent{
		PartyID:   42,
		BetID:     9,
		OldStatus: entities.BetStatusClosed,
		NewStatus: entities.BetStatusSettled,
	}

	envelope, err := NewEventEnvelope(event)
	require.NoError(t, err)

	assert.NotEmpty(t, envelope.EventID)
	assert.Equal(t, string(events.EventTypeBetStatusChanged), envelope.EventType)
	assert.Equal(t, int64(42), envelope.PartyID)
	assert.Equal(t, "partybets", envelope.SourceService)
	assert.False(t, envelope.Timestamp.IsZero())

	var decoded events.BetStatusChangedEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &decoded))
	assert.Equal(t, event, decoded)

	other, err := NewEventEnvelope(event)
	require.NoError(t, err)
	assert.NotEqual(t, envelope.EventID, other.EventID)
}

func TestConsumerName(t *testing.T) {
	assert.Equal(t, "partybets-bets_settled", consumerName("bets.settled"))
	assert.Equal(t, "partybets-bets_wildcard", consumerName("bets.*"))
	assert.Equal(t, "partybets-bets_all", consumerName("bets.>"))
}
