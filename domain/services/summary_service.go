package services

import (
	"context"
	"fmt"

	"partybets/domain/entities"
	"partybets/domain/interfaces"
)

type summaryService struct {
	partyID        int64
	wagerRepo      interfaces.WagerRepository
	settlementRepo interfaces.SettlementRepository
}

// NewSummaryService creates a summary service for one party
func NewSummaryService(
	partyID int64,
	wagerRepo interfaces.WagerRepository,
	settlementRepo interfaces.SettlementRepository,
) interfaces.SummaryService {
	return &summaryService{
		partyID:        partyID,
		wagerRepo:      wagerRepo,
		settlementRepo: settlementRepo,
	}
}

// GetPartySummary returns each user's net result across settled bets
func (s *summaryService) GetPartySummary(ctx context.Context) (*entities.PartySummary, error) {
	settlements, err := s.settlementRepo.ListByParty(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	totalPot, err := s.wagerRepo.TotalByParty(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total pot: %w", err)
	}

	return SummarizeParty(s.partyID, settlements, totalPot), nil
}

// GetPaymentPlan returns the transfers that settle everyone's net result
func (s *summaryService) GetPaymentPlan(ctx context.Context) ([]*entities.Transfer, error) {
	summary, err := s.GetPartySummary(ctx)
	if err != nil {
		return nil, err
	}
	return MinimizeDebts(summary.Users), nil
}
