package infrastructure

import (
	"context"

	"partybets/domain/interfaces"
)

// unitOfWork wraps the repository UnitOfWork and adds event publishing on commit
type unitOfWork struct {
	inner                  interfaces.UnitOfWork
	transactionalPublisher *NATSTransactionalPublisher
	ctx                    context.Context
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	u.ctx = ctx
	return u.inner.Begin(ctx)
}

// Commit commits the transaction and flushes events on success
func (u *unitOfWork) Commit() error {
	if err := u.inner.Commit(); err != nil {
		u.transactionalPublisher.Discard()
		return err
	}

	// Events are best-effort once the transaction has committed
	_ = u.transactionalPublisher.Flush(context.WithoutCancel(u.ctx))

	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	u.transactionalPublisher.Discard()
	return u.inner.Rollback()
}

// Repository getters - delegate to inner UnitOfWork
func (u *unitOfWork) PartyRepository() interfaces.PartyRepository {
	return u.inner.PartyRepository()
}

func (u *unitOfWork) BetRepository() interfaces.BetRepository {
	return u.inner.BetRepository()
}

func (u *unitOfWork) WagerRepository() interfaces.WagerRepository {
	return u.inner.WagerRepository()
}

func (u *unitOfWork) SettlementRepository() interfaces.SettlementRepository {
	return u.inner.SettlementRepository()
}

// EventBus returns the transactional event publisher
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.transactionalPublisher
}
