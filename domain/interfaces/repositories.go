package interfaces

import (
	"context"

	"partybets/domain/entities"
	"partybets/domain/events"
)

// PartyRepository defines the interface for party data access
type PartyRepository interface {
	// Create creates a new party
	Create(ctx context.Context, name string) (*entities.Party, error)

	// GetByID retrieves a party by its ID, returning nil if it does not exist
	GetByID(ctx context.Context, id int64) (*entities.Party, error)

	// List returns all parties, newest first
	List(ctx context.Context) ([]*entities.Party, error)
}

// BetRepository defines the interface for bet data access within one party
type BetRepository interface {
	// Create creates a bet together with its options
	Create(ctx context.Context, bet *entities.Bet, options []string) (*entities.BetDetail, error)

	// GetByID retrieves a bet by its ID, returning nil if it does not exist in the party
	GetByID(ctx context.Context, id int64) (*entities.Bet, error)

	// GetDetailByID retrieves a bet with its options and wagers
	GetDetailByID(ctx context.Context, id int64) (*entities.BetDetail, error)

	// GetDetailByIDForUpdate is GetDetailByID with the bet row locked for the transaction
	GetDetailByIDForUpdate(ctx context.Context, id int64) (*entities.BetDetail, error)

	// ListByParty returns every bet in the party, newest first
	ListByParty(ctx context.Context) ([]*entities.Bet, error)

	// TransitionStatus moves a bet from one status to another only if it is still in
	// the expected status. It reports whether the row was updated.
	TransitionStatus(ctx context.Context, betID int64, from, to entities.BetStatus, winningOptionID *int64) (bool, error)
}

// WagerRepository defines the interface for wager data access within one party
type WagerRepository interface {
	// Create records a new wager
	Create(ctx context.Context, wager *entities.Wager) error

	// ListByBet returns the wagers on a bet in the order they were placed
	ListByBet(ctx context.Context, betID int64) ([]*entities.Wager, error)

	// TotalByParty returns the sum of every wager placed in the party
	TotalByParty(ctx context.Context) (int64, error)
}

// SettlementRepository defines the interface for settlement data access within one party
type SettlementRepository interface {
	// CreateBatch records the settlements of one bet
	CreateBatch(ctx context.Context, settlements []*entities.Settlement) error

	// ListByParty returns every settlement for bets in the party
	ListByParty(ctx context.Context) ([]*entities.Settlement, error)

	// ListByBet returns the settlements of one bet
	ListByBet(ctx context.Context, betID int64) ([]*entities.Settlement, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}

// SummaryCache stores computed party summaries
type SummaryCache interface {
	// Get returns the cached summary, or nil on a miss
	Get(ctx context.Context, partyID int64) (*entities.PartySummary, error)

	// Set stores a summary
	Set(ctx context.Context, summary *entities.PartySummary) error

	// Invalidate drops the cached summary of a party
	Invalidate(ctx context.Context, partyID int64) error
}
