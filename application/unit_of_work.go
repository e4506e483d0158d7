package application

import (
	"partybets/domain/interfaces"
)

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// CreateForParty creates a new UnitOfWork instance scoped to a specific party
	CreateForParty(partyID int64) interfaces.UnitOfWork
}
