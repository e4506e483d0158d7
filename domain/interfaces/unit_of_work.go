package interfaces

import (
	"context"
)

// UnitOfWork groups the repositories of one database transaction with the
// publisher its events go through
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	PartyRepository() PartyRepository
	BetRepository() BetRepository
	WagerRepository() WagerRepository
	SettlementRepository() SettlementRepository
	EventBus() EventPublisher
}
