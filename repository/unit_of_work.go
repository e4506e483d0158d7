package repository

import (
	"context"
	"errors"
	"fmt"

	"partybets/database"
	"partybets/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface for one party
type unitOfWork struct {
	db             *database.DB
	tx             pgx.Tx
	ctx            context.Context
	partyID        int64
	eventPublisher interfaces.EventPublisher
	partyRepo      interfaces.PartyRepository
	betRepo        interfaces.BetRepository
	wagerRepo      interfaces.WagerRepository
	settlementRepo interfaces.SettlementRepository
}

// UnitOfWorkFactory creates party-scoped units of work
type UnitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db}
}

// CreateForParty creates a unit of work whose repositories are scoped to the party.
// Events go to the given publisher; pass a transactional one to defer them until commit.
func (f *UnitOfWorkFactory) CreateForParty(partyID int64, eventPublisher interfaces.EventPublisher) interfaces.UnitOfWork {
	return &unitOfWork{
		db:             f.db,
		partyID:        partyID,
		eventPublisher: eventPublisher,
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.partyRepo = newPartyRepository(tx)
	u.betRepo = newBetRepository(tx, u.partyID)
	u.wagerRepo = newWagerRepository(tx, u.partyID)
	u.settlementRepo = newSettlementRepository(tx, u.partyID)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// PartyRepository returns the party repository for this unit of work
func (u *unitOfWork) PartyRepository() interfaces.PartyRepository {
	if u.partyRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.partyRepo
}

// BetRepository returns the bet repository for this unit of work
func (u *unitOfWork) BetRepository() interfaces.BetRepository {
	if u.betRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.betRepo
}

// WagerRepository returns the wager repository for this unit of work
func (u *unitOfWork) WagerRepository() interfaces.WagerRepository {
	if u.wagerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.wagerRepo
}

// SettlementRepository returns the settlement repository for this unit of work
func (u *unitOfWork) SettlementRepository() interfaces.SettlementRepository {
	if u.settlementRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.settlementRepo
}

// EventBus returns the event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.eventPublisher == nil {
		panic("unit of work has no event publisher")
	}
	return u.eventPublisher
}
