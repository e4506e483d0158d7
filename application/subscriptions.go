package application

import (
	"context"
	"fmt"

	"partybets/domain/events"
)

// Subscribers are the optional consumers of committed events. Nil fields are skipped.
type Subscribers struct {
	Broadcaster EventBroadcaster
	Announcer   SettlementAnnouncer
	Recorder    EventRecorder
}

var allEventTypes = []events.EventType{
	events.EventTypeBetCreated,
	events.EventTypeWagerPlaced,
	events.EventTypeBetStatusChanged,
	events.EventTypeBetSettled,
}

// RegisterApplicationSubscriptions registers all application-level event subscriptions
func RegisterApplicationSubscriptions(subscriber EventSubscriber, app *PartyApp, subs Subscribers) {
	// New wagers change the party pot and settlements change nets
	invalidate := func(ctx context.Context, event events.Event) error {
		app.InvalidateSummary(ctx, event.Scope())
		return nil
	}
	subscriber.RegisterLocalHandler(events.EventTypeWagerPlaced, invalidate)
	subscriber.RegisterLocalHandler(events.EventTypeBetSettled, invalidate)

	if subs.Recorder != nil {
		for _, eventType := range allEventTypes {
			subscriber.RegisterLocalHandler(eventType, subs.Recorder.HandleEvent)
		}
	}

	if subs.Broadcaster != nil {
		broadcast := func(ctx context.Context, event events.Event) error {
			subs.Broadcaster.Broadcast(event.Scope(), event)
			return nil
		}
		for _, eventType := range allEventTypes {
			subscriber.RegisterLocalHandler(eventType, broadcast)
		}
	}

	if subs.Announcer != nil {
		subscriber.RegisterLocalHandler(events.EventTypeBetSettled, func(ctx context.Context, event events.Event) error {
			settled, ok := event.(events.BetSettledEvent)
			if !ok {
				return fmt.Errorf("unexpected event type %T", event)
			}
			return subs.Announcer.AnnounceSettlement(ctx, settled)
		})
	}
}
