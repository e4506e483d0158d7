package infrastructure

import (
	"context"

	"partybets/database"
	"partybets/domain/events"
	"partybets/domain/interfaces"
	"partybets/repository"
)

// LocalHandlerRegistry is implemented by publishers that can dispatch events in process
type LocalHandlerRegistry interface {
	RegisterLocalHandler(eventType events.EventType, handler func(context.Context, events.Event) error)
}

// UnitOfWorkFactory implements the interfaces.UnitOfWorkFactory interface.
// Its units of work hold events until the database transaction commits.
type UnitOfWorkFactory struct {
	repoFactory    *repository.UnitOfWorkFactory
	eventPublisher interfaces.EventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWorkFactory
func NewUnitOfWorkFactory(db *database.DB, eventPublisher interfaces.EventPublisher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		repoFactory:    repository.NewUnitOfWorkFactory(db),
		eventPublisher: eventPublisher,
	}
}

// RegisterLocalHandler registers a handler that will be invoked in process for committed events
func (f *UnitOfWorkFactory) RegisterLocalHandler(eventType events.EventType, handler func(context.Context, events.Event) error) {
	if registry, ok := f.eventPublisher.(LocalHandlerRegistry); ok {
		registry.RegisterLocalHandler(eventType, handler)
	}
}

// CreateForParty creates a new UnitOfWork with a transactional event publisher
func (f *UnitOfWorkFactory) CreateForParty(partyID int64) interfaces.UnitOfWork {
	transactionalPublisher := NewNATSTransactionalPublisher(f.eventPublisher)

	return &unitOfWork{
		inner:                  f.repoFactory.CreateForParty(partyID, transactionalPublisher),
		transactionalPublisher: transactionalPublisher,
	}
}
