package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"partybets/domain/entities"
	"partybets/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const maxPartyNameLength = 100

type partyService struct {
	partyRepo interfaces.PartyRepository
}

// NewPartyService creates a new party service
func NewPartyService(partyRepo interfaces.PartyRepository) interfaces.PartyService {
	return &partyService{
		partyRepo: partyRepo,
	}
}

// CreateParty creates a party with a trimmed, non-empty name
func (s *partyService) CreateParty(ctx context.Context, name string) (*entities.Party, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entities.NewValidationError("party name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxPartyNameLength {
		return nil, entities.NewValidationError(fmt.Sprintf("party name cannot exceed %d characters", maxPartyNameLength))
	}

	party, err := s.partyRepo.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create party: %w", err)
	}

	log.WithFields(log.Fields{
		"party_id": party.ID,
		"name":     party.Name,
	}).Info("Party created")

	return party, nil
}

// GetParty returns a party or a not-found error
func (s *partyService) GetParty(ctx context.Context, id int64) (*entities.Party, error) {
	party, err := s.partyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get party: %w", err)
	}
	if party == nil {
		return nil, entities.ErrPartyNotFound
	}
	return party, nil
}

// ListParties returns all parties
func (s *partyService) ListParties(ctx context.Context) ([]*entities.Party, error) {
	parties, err := s.partyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return parties, nil
}
