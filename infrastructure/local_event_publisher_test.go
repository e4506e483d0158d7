package infrastructure

import (
	"context"
	"errors"
	"testing"

	"partybets/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalEventPublisher_DispatchesByType(t *testing.T) {
	publisher := NewLocalEventPublisher()

	var settled []events.Event
	createdCalls := 0

	publisher.RegisterLocalHandler(events.EventTypeBetSettled, func(ctx context.Context, event events.Event) error {
		settled = append(settled, event)
		return nil
	})
	publisher.RegisterLocalHandler(events.EventTypeBetCreated, func(ctx context.Context, event events.Event) error {
		createdCalls++
		return nil
	})

	settledEvent := events.BetSettledEvent{PartyID: 3, BetID: 7, WinningLabel: "Chiefs", TotalPot: 100}
	require.NoError(t, publisher.Publish(settledEvent))

	require.Len(t, settled, 1)
	assert.Equal(t, settledEvent, settled[0])
	assert.Equal(t, 0, createdCalls)
}

func TestLocalEventPublisher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	publisher := NewLocalEventPublisher()

	secondCalled := false
	publisher.RegisterLocalHandler(events.EventTypeWagerPlaced, func(ctx context.Context, event events.Event) error {
		return errors.New("boom")
	})
	publisher.RegisterLocalHandler(events.EventTypeWagerPlaced, func(ctx context.Context, event events.Event) error {
		secondCalled = true
		return nil
	})

	err := publisher.Publish(events.WagerPlacedEvent{PartyID: 1, BetID: 2, Amount: 5})

	require.NoError(t, err)
	assert.True(t, secondCalled)
}

func TestLocalEventPublisher_NoHandlers(t *testing.T) {
	publisher := NewLocalEventPublisher()
	assert.NoError(t, publisher.Publish(events.BetCreatedEvent{PartyID: 1}))
}
