package application

import (
	"context"

	"partybets/domain/events"
)

// EventSubscriber registers in-process handlers for committed domain events
type EventSubscriber interface {
	RegisterLocalHandler(eventType events.EventType, handler func(context.Context, events.Event) error)
}

// EventBroadcaster pushes events to live clients watching a party
type EventBroadcaster interface {
	Broadcast(partyID int64, event events.Event)
}

// SettlementAnnouncer posts the result of a settled bet somewhere people will see it
type SettlementAnnouncer interface {
	AnnounceSettlement(ctx context.Context, event events.BetSettledEvent) error
}

// EventRecorder records committed events, for example as metrics
type EventRecorder interface {
	HandleEvent(ctx context.Context, event events.Event) error
}
