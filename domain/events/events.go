package events

import (
	"partybets/domain/entities"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBetCreated       EventType = "bet_created"
	EventTypeWagerPlaced      EventType = "wager_placed"
	EventTypeBetStatusChanged EventType = "bet_status_changed"
	EventTypeBetSettled       EventType = "bet_settled"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
	// Scope returns the ID of the party the event belongs to
	Scope() int64
}

// BetCreatedEvent is published when a bet is opened for wagers
type BetCreatedEvent struct {
	PartyID     int64    `json:"partyId"`
	BetID       int64    `json:"betId"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	CreatorName string   `json:"creatorName"`
}

func (e BetCreatedEvent) Type() EventType { return EventTypeBetCreated }
func (e BetCreatedEvent) Scope() int64    { return e.PartyID }

// WagerPlacedEvent is published when a user stakes on an option
type WagerPlacedEvent struct {
	PartyID  int64  `json:"partyId"`
	BetID    int64  `json:"betId"`
	WagerID  int64  `json:"wagerId"`
	UserName string `json:"userName"`
	OptionID int64  `json:"optionId"`
	Amount   int64  `json:"amount"`
	TotalPot int64  `json:"totalPot"`
}

func (e WagerPlacedEvent) Type() EventType { return EventTypeWagerPlaced }
func (e WagerPlacedEvent) Scope() int64    { return e.PartyID }

// BetStatusChangedEvent is published on every lifecycle transition
type BetStatusChangedEvent struct {
	PartyID   int64              `json:"partyId"`
	BetID     int64              `json:"betId"`
	OldStatus entities.BetStatus `json:"oldStatus"`
	NewStatus entities.BetStatus `json:"newStatus"`
}

func (e BetStatusChangedEvent) Type() EventType { return EventTypeBetStatusChanged }
func (e BetStatusChangedEvent) Scope() int64    { return e.PartyID }

// BetSettledEvent carries the payouts of a settled bet
type BetSettledEvent struct {
	PartyID         int64                    `json:"partyId"`
	BetID           int64                    `json:"betId"`
	Question        string                   `json:"question"`
	WinningOptionID int64                    `json:"winningOptionId"`
	WinningLabel    string                   `json:"winningLabel"`
	TotalPot        int64                    `json:"totalPot"`
	Results         []*entities.PayoutResult `json:"results"`
}

func (e BetSettledEvent) Type() EventType { return EventTypeBetSettled }
func (e BetSettledEvent) Scope() int64    { return e.PartyID }
