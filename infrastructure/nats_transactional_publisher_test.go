package infrastructure

import (
	"context"
	"errors"
	"testing"

	"partybets/domain/entities"
	"partybets/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventPublisher records every event it is asked to publish
type MockEventPublisher struct {
	PublishedEvents []events.Event
	PublishError    error
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	if m.PublishError != nil {
		return m.PublishError
	}
	m.PublishedEvents = append(m.PublishedEvents, event)
	return nil
}

func TestNATSTransactionalPublisher_HoldsEventsUntilFlush(t *testing.T) {
	mockPublisher := &MockEventPublisher{
		PublishedEvents: make([]events.Event, 0),
	}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	created := events.BetCreatedEvent{PartyID: 1, BetID: 10, Question: "Who wins?", Options: []string{"Chiefs", "Eagles"}}
	placed := events.WagerPlacedEvent{PartyID: 1, BetID: 10, WagerID: 5, UserName: "Alice", OptionID: 100, Amount: 20, TotalPot: 20}

	require.NoError(t, transPublisher.Publish(created))
	require.NoError(t, transPublisher.Publish(placed))

	// Nothing reaches the real publisher before flush
	assert.Len(t, mockPublisher.PublishedEvents, 0)
	assert.Equal(t, 2, transPublisher.PendingCount())

	require.NoError(t, transPublisher.Flush(context.Background()))

	require.Len(t, mockPublisher.PublishedEvents, 2)
	assert.Equal(t, created, mockPublisher.PublishedEvents[0])
	assert.Equal(t, placed, mockPublisher.PublishedEvents[1])
	assert.Equal(t, 0, transPublisher.PendingCount())
}

func TestNATSTransactionalPublisher_Discard(t *testing.T) {
	mockPublisher := &MockEventPublisher{
		PublishedEvents: make([]events.Event, 0),
	}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	testEvent := events.BetStatusChangedEvent{
		PartyID:   1,
		BetID:     10,
		OldStatus: entities.BetStatusOpen,
		NewStatus: entities.BetStatusClosed,
	}
	require.NoError(t, transPublisher.Publish(testEvent))

	transPublisher.Discard()

	// A flush after discard has nothing to send
	require.NoError(t, transPublisher.Flush(context.Background()))
	assert.Len(t, mockPublisher.PublishedEvents, 0)
}

func TestNATSTransactionalPublisher_FlushContinuesAfterFailure(t *testing.T) {
	mockPublisher := &MockEventPublisher{
		PublishError: errors.New("nats unavailable"),
	}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	require.NoError(t, transPublisher.Publish(events.BetCreatedEvent{PartyID: 1, BetID: 1}))
	require.NoError(t, transPublisher.Publish(events.BetCreatedEvent{PartyID: 1, BetID: 2}))

	// Publish failures after commit are logged, not returned
	err := transPublisher.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, transPublisher.PendingCount())
}
