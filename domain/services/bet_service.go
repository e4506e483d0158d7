package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"partybets/config"
	"partybets/domain/entities"
	"partybets/domain/events"
	"partybets/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const (
	maxQuestionLength = 500
	maxOptionLength   = 100
	maxNameLength     = 100
	minOptionsPerBet  = 2
	maxOptionsPerBet  = 10
)

type betService struct {
	partyID        int64
	policy         *BetPolicy
	betRepo        interfaces.BetRepository
	wagerRepo      interfaces.WagerRepository
	settlementRepo interfaces.SettlementRepository
	eventPublisher interfaces.EventPublisher
}

// NewBetService creates a bet service for one party
func NewBetService(
	partyID int64,
	betRepo interfaces.BetRepository,
	wagerRepo interfaces.WagerRepository,
	settlementRepo interfaces.SettlementRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.BetService {
	return &betService{
		partyID:        partyID,
		policy:         NewBetPolicy(config.Get().HostPIN),
		betRepo:        betRepo,
		wagerRepo:      wagerRepo,
		settlementRepo: settlementRepo,
		eventPublisher: eventPublisher,
	}
}

// CreateBet opens a new bet with its options
func (s *betService) CreateBet(ctx context.Context, question string, options []string, creatorName string) (*entities.BetDetail, error) {
	question = strings.TrimSpace(question)
	creatorName = strings.TrimSpace(creatorName)

	labels, err := validateBetCreation(question, options, creatorName)
	if err != nil {
		return nil, err
	}

	bet := &entities.Bet{
		PartyID:     s.partyID,
		Question:    question,
		Status:      entities.BetStatusOpen,
		CreatorName: creatorName,
	}

	detail, err := s.betRepo.Create(ctx, bet, labels)
	if err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	if err := s.eventPublisher.Publish(events.BetCreatedEvent{
		PartyID:     s.partyID,
		BetID:       detail.Bet.ID,
		Question:    detail.Bet.Question,
		Options:     labels,
		CreatorName: detail.Bet.CreatorName,
	}); err != nil {
		log.WithError(err).Error("Failed to publish bet created event")
	}

	log.WithFields(log.Fields{
		"party_id": s.partyID,
		"bet_id":   detail.Bet.ID,
		"options":  len(labels),
		"creator":  creatorName,
	}).Info("Bet created")

	return detail, nil
}

// validateBetCreation checks the question, options and creator and returns trimmed option labels
func validateBetCreation(question string, options []string, creatorName string) ([]string, error) {
	if question == "" {
		return nil, entities.NewValidationError("question cannot be empty")
	}
	if utf8.RuneCountInString(question) > maxQuestionLength {
		return nil, entities.NewValidationError(fmt.Sprintf("question cannot exceed %d characters", maxQuestionLength))
	}
	if creatorName == "" {
		return nil, entities.NewValidationError("creator name is required")
	}
	if utf8.RuneCountInString(creatorName) > maxNameLength {
		return nil, entities.NewValidationError(fmt.Sprintf("creator name cannot exceed %d characters", maxNameLength))
	}
	if len(options) < minOptionsPerBet {
		return nil, entities.NewValidationError(fmt.Sprintf("must provide at least %d options", minOptionsPerBet))
	}
	if len(options) > maxOptionsPerBet {
		return nil, entities.NewValidationError(fmt.Sprintf("cannot have more than %d options", maxOptionsPerBet))
	}

	// Check for duplicate options (case-insensitive)
	labels := make([]string, 0, len(options))
	seen := make(map[string]bool)
	for _, option := range options {
		label := strings.TrimSpace(option)
		if label == "" {
			return nil, entities.NewValidationError("option text cannot be empty")
		}
		if utf8.RuneCountInString(label) > maxOptionLength {
			return nil, entities.NewValidationError(fmt.Sprintf("option text cannot exceed %d characters", maxOptionLength))
		}
		key := strings.ToLower(label)
		if seen[key] {
			return nil, entities.NewValidationError(fmt.Sprintf("duplicate option: %s", label))
		}
		seen[key] = true
		labels = append(labels, label)
	}

	return labels, nil
}

// PlaceWager stakes an amount on one option of an open bet
func (s *betService) PlaceWager(ctx context.Context, betID int64, userName string, optionID int64, amount int64) (*entities.Wager, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, entities.NewValidationError("user name is required")
	}
	if utf8.RuneCountInString(userName) > maxNameLength {
		return nil, entities.NewValidationError(fmt.Sprintf("user name cannot exceed %d characters", maxNameLength))
	}
	if amount <= 0 {
		return nil, entities.NewValidationError("wager amount must be positive")
	}

	detail, err := s.getDetail(ctx, betID, false)
	if err != nil {
		return nil, err
	}

	if !detail.Bet.IsOpen() {
		return nil, entities.ErrBetNotAcceptingWager
	}
	if !detail.HasOption(optionID) {
		return nil, entities.ErrInvalidOption
	}

	wager := &entities.Wager{
		BetID:    betID,
		UserName: userName,
		OptionID: optionID,
		Amount:   amount,
	}
	if err := s.wagerRepo.Create(ctx, wager); err != nil {
		return nil, fmt.Errorf("failed to create wager: %w", err)
	}

	if err := s.eventPublisher.Publish(events.WagerPlacedEvent{
		PartyID:  s.partyID,
		BetID:    betID,
		WagerID:  wager.ID,
		UserName: userName,
		OptionID: optionID,
		Amount:   amount,
		TotalPot: detail.TotalPot() + amount,
	}); err != nil {
		log.WithError(err).Error("Failed to publish wager placed event")
	}

	log.WithFields(log.Fields{
		"party_id":  s.partyID,
		"bet_id":    betID,
		"user":      userName,
		"option_id": optionID,
		"amount":    amount,
	}).Info("Wager placed")

	return wager, nil
}

// CloseBet stops a bet from accepting wagers
func (s *betService) CloseBet(ctx context.Context, betID int64, creds entities.Credentials) (*entities.Bet, error) {
	bet, err := s.betRepo.GetByID(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return nil, entities.ErrBetNotFound
	}

	if err := s.policy.CheckClose(bet, creds); err != nil {
		return nil, err
	}

	applied, err := s.betRepo.TransitionStatus(ctx, betID, entities.BetStatusOpen, entities.BetStatusClosed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to close bet: %w", err)
	}
	if !applied {
		// Another request moved the bet first
		return nil, entities.ErrBetNotOpen
	}

	oldStatus := bet.Status
	if err := bet.Close(time.Now().UTC()); err != nil {
		return nil, err
	}

	s.publishStatusChange(bet, oldStatus)

	log.WithFields(log.Fields{
		"party_id": s.partyID,
		"bet_id":   betID,
		"by_host":  s.policy.IsHost(creds.PIN),
	}).Info("Bet closed")

	return bet, nil
}

// SettleBet records the winning option and the payout of every participant
func (s *betService) SettleBet(ctx context.Context, betID int64, winningOptionID int64, creds entities.Credentials) (*entities.BetResolution, error) {
	detail, err := s.getDetail(ctx, betID, true)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckSettle(detail, winningOptionID, creds); err != nil {
		return nil, err
	}

	results := CalculatePayouts(detail.Wagers, winningOptionID)

	applied, err := s.betRepo.TransitionStatus(ctx, betID, entities.BetStatusClosed, entities.BetStatusSettled, &winningOptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to settle bet: %w", err)
	}
	if !applied {
		return nil, entities.ErrBetAlreadySettled
	}

	if len(results) > 0 {
		settlements := make([]*entities.Settlement, 0, len(results))
		for _, r := range results {
			settlements = append(settlements, r.ToSettlement(betID))
		}
		if err := s.settlementRepo.CreateBatch(ctx, settlements); err != nil {
			return nil, fmt.Errorf("failed to record settlements: %w", err)
		}
	}

	bet := detail.Bet
	oldStatus := bet.Status
	if err := bet.Settle(winningOptionID, time.Now().UTC()); err != nil {
		return nil, err
	}

	resolution := &entities.BetResolution{
		Bet:           bet,
		WinningOption: detail.FindOption(winningOptionID),
		TotalPot:      detail.TotalPot(),
		Results:       results,
	}

	s.publishStatusChange(bet, oldStatus)
	if err := s.eventPublisher.Publish(events.BetSettledEvent{
		PartyID:         s.partyID,
		BetID:           betID,
		Question:        bet.Question,
		WinningOptionID: winningOptionID,
		WinningLabel:    resolution.WinningOption.Label,
		TotalPot:        resolution.TotalPot,
		Results:         results,
	}); err != nil {
		log.WithError(err).Error("Failed to publish bet settled event")
	}

	log.WithFields(log.Fields{
		"party_id":       s.partyID,
		"bet_id":         betID,
		"winning_option": winningOptionID,
		"participants":   len(results),
		"total_pot":      resolution.TotalPot,
	}).Info("Bet settled")

	return resolution, nil
}

// GetBetDetail returns a bet with its options and wagers
func (s *betService) GetBetDetail(ctx context.Context, betID int64) (*entities.BetDetail, error) {
	return s.getDetail(ctx, betID, false)
}

// ListBets returns every bet in the party
func (s *betService) ListBets(ctx context.Context) ([]*entities.Bet, error) {
	bets, err := s.betRepo.ListByParty(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}
	return bets, nil
}

func (s *betService) getDetail(ctx context.Context, betID int64, forUpdate bool) (*entities.BetDetail, error) {
	var detail *entities.BetDetail
	var err error
	if forUpdate {
		detail, err = s.betRepo.GetDetailByIDForUpdate(ctx, betID)
	} else {
		detail, err = s.betRepo.GetDetailByID(ctx, betID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet detail: %w", err)
	}
	if detail == nil || detail.Bet == nil {
		return nil, entities.ErrBetNotFound
	}
	return detail, nil
}

func (s *betService) publishStatusChange(bet *entities.Bet, oldStatus entities.BetStatus) {
	if err := s.eventPublisher.Publish(events.BetStatusChangedEvent{
		PartyID:   s.partyID,
		BetID:     bet.ID,
		OldStatus: oldStatus,
		NewStatus: bet.Status,
	}); err != nil {
		log.WithError(err).Error("Failed to publish bet status change event")
	}
}
