package interfaces

import (
	"context"

	"partybets/domain/entities"
)

// PartyService defines the interface for party operations
type PartyService interface {
	// CreateParty creates a party with a trimmed, non-empty name
	CreateParty(ctx context.Context, name string) (*entities.Party, error)

	// GetParty returns a party or a not-found error
	GetParty(ctx context.Context, id int64) (*entities.Party, error)

	// ListParties returns all parties
	ListParties(ctx context.Context) ([]*entities.Party, error)
}

// BetService defines the interface for bet operations within one party
type BetService interface {
	// CreateBet opens a new bet with its options
	CreateBet(ctx context.Context, question string, options []string, creatorName string) (*entities.BetDetail, error)

	// PlaceWager stakes an amount on one option of an open bet
	PlaceWager(ctx context.Context, betID int64, userName string, optionID int64, amount int64) (*entities.Wager, error)

	// CloseBet stops a bet from accepting wagers
	CloseBet(ctx context.Context, betID int64, creds entities.Credentials) (*entities.Bet, error)

	// SettleBet records the winning option and the payout of every participant
	SettleBet(ctx context.Context, betID int64, winningOptionID int64, creds entities.Credentials) (*entities.BetResolution, error)

	// GetBetDetail returns a bet with its options and wagers
	GetBetDetail(ctx context.Context, betID int64) (*entities.BetDetail, error)

	// ListBets returns every bet in the party
	ListBets(ctx context.Context) ([]*entities.Bet, error)
}

// SummaryService defines the interface for party net summaries
type SummaryService interface {
	// GetPartySummary returns each user's net result across settled bets
	GetPartySummary(ctx context.Context) (*entities.PartySummary, error)

	// GetPaymentPlan returns the transfers that settle everyone's net result
	GetPaymentPlan(ctx context.Context) ([]*entities.Transfer, error)
}
