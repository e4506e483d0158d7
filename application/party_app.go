package application

import (
	"context"
	"fmt"

	"partybets/domain/entities"
	"partybets/domain/interfaces"
	"partybets/domain/services"

	log "github.com/sirupsen/logrus"
)

// PartyApp runs every party command in its own unit of work
type PartyApp struct {
	uowFactory   UnitOfWorkFactory
	summaryCache interfaces.SummaryCache
}

// NewPartyApp creates the party application. summaryCache may be nil.
func NewPartyApp(uowFactory UnitOfWorkFactory, summaryCache interfaces.SummaryCache) *PartyApp {
	return &PartyApp{
		uowFactory:   uowFactory,
		summaryCache: summaryCache,
	}
}

// inTransaction runs fn in a unit of work, committing on success and rolling back otherwise
func (a *PartyApp) inTransaction(ctx context.Context, partyID int64, fn func(uow interfaces.UnitOfWork) error) error {
	uow := a.uowFactory.CreateForParty(partyID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			uow.Rollback()
			panic(r)
		}
	}()

	if err := fn(uow); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			log.WithError(rbErr).Error("Failed to roll back transaction")
		}
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// withParty is inTransaction for commands that need the party to exist
func (a *PartyApp) withParty(ctx context.Context, partyID int64, fn func(uow interfaces.UnitOfWork) error) error {
	return a.inTransaction(ctx, partyID, func(uow interfaces.UnitOfWork) error {
		party, err := uow.PartyRepository().GetByID(ctx, partyID)
		if err != nil {
			return fmt.Errorf("failed to get party: %w", err)
		}
		if party == nil {
			return entities.ErrPartyNotFound
		}
		return fn(uow)
	})
}

func betService(partyID int64, uow interfaces.UnitOfWork) interfaces.BetService {
	return services.NewBetService(
		partyID,
		uow.BetRepository(),
		uow.WagerRepository(),
		uow.SettlementRepository(),
		uow.EventBus(),
	)
}

// CreateParty creates a new party
func (a *PartyApp) CreateParty(ctx context.Context, name string) (*entities.Party, error) {
	var party *entities.Party
	err := a.inTransaction(ctx, 0, func(uow interfaces.UnitOfWork) error {
		var err error
		party, err = services.NewPartyService(uow.PartyRepository()).CreateParty(ctx, name)
		return err
	})
	return party, err
}

// GetParty returns a party or a not-found error
func (a *PartyApp) GetParty(ctx context.Context, partyID int64) (*entities.Party, error) {
	var party *entities.Party
	err := a.inTransaction(ctx, partyID, func(uow interfaces.UnitOfWork) error {
		var err error
		party, err = services.NewPartyService(uow.PartyRepository()).GetParty(ctx, partyID)
		return err
	})
	return party, err
}

// ListParties returns all parties
func (a *PartyApp) ListParties(ctx context.Context) ([]*entities.Party, error) {
	var parties []*entities.Party
	err := a.inTransaction(ctx, 0, func(uow interfaces.UnitOfWork) error {
		var err error
		parties, err = services.NewPartyService(uow.PartyRepository()).ListParties(ctx)
		return err
	})
	return parties, err
}

// CreateBet opens a new bet in the party
func (a *PartyApp) CreateBet(ctx context.Context, partyID int64, question string, options []string, creatorName string) (*entities.BetDetail, error) {
	var detail *entities.BetDetail
	err := a.withParty(ctx, partyID, func(uow interfaces.UnitOfWork) error {
		var err error
		detail, err = betService(partyID, uow).CreateBet(ctx, question, options, creatorName)
		return err
	})
	return detail, err
}

// PlaceWager stakes an amount on one option of an open bet
func (a *PartyApp) PlaceWager(ctx context.Context, partyID, betID int64, userName string, optionID, amount int64) (*entities.Wager, error) {
	var wager *entities.Wager
	err := a.withParty(ctx, partyID, func(uow interfaces.UnitOfWork) error {
		var err error
		wager, err = betService(partyID, uow).PlaceWager(ctx, betID, userName, optionID, amount)
		return err
	})
	return wager, err
}

// CloseBet stops a bet from accepting wagers
func (a *PartyApp) CloseBet(ctx context.Context, partyID, betID int64, creds entities.Credentials) (*entities.Bet, error) {
	var bet *entities.Bet
	err := a.withParty(ctx, partyID, func(uow interfaces.UnitOfWork) error {
		var err error
		bet, err = betService(partyID, uow).CloseBet(ctx, betID, creds)
		return err
	})
	return bet, err
}

// SettleBet records the outcome of a closed bet and the payout of every participant
func (a *PartyApp) SettleBet(ctx context.Context, partyID, betID, winningOptionID int64, creds entities.Credentials) (*entities.BetResolution, error) {
	var resolution *entities.BetResolution
	err := a.withParty(ctx, partyID, func(uow interfaces.UnitOfWork) error {
		var err error
		resolution, err = betService(partyID, uow).SettleBet(ctx, betID, winningOptionID, creds)
		return err
	})
	return resolution, err
}

// GetBetDetail returns a bet with its options and wagers
func (a *PartyApp) GetBetDetail(ctx context.Context, partyID, betID int64) (*entities.BetDetail, error) {
	var detail *entities.BetDetail
	err := a.withParty(ctx, partyID, func(uow interfaces.UnitOfWork) error {
		var err error
		detail, err = betService(partyID, uow).GetBetDetail(ctx, betID)
		return err
	})
	return detail, err
}

// ListBets returns every bet in the party
func (a *PartyApp) ListBets(ctx context.Context, partyID int64) ([]*entities.Bet, error) {
	var bets []*entities.Bet
	err := a.withParty(ctx, partyID, func(uow interfaces.UnitOfWork) error {
		var err error
		bets, err = betService(partyID, uow).ListBets(ctx)
		return err
	})
	return bets, err
}

// ListBetSettlements returns the settlement records of one bet, biggest winner first
func (a *PartyApp) ListBetSettlements(ctx context.Context, partyID, betID int64) ([]*entities.Settlement, error) {
	var settlements []*entities.Settlement
	err := a.withParty(ctx, partyID, func(uow interfaces.UnitOfWork) error {
		bet, err := uow.BetRepository().GetByID(ctx, betID)
		if err != nil {
			return fmt.Errorf("failed to get bet: %w", err)
		}
		if bet == nil {
			return entities.ErrBetNotFound
		}

		settlements, err = uow.SettlementRepository().ListByBet(ctx, betID)
		if err != nil {
			return fmt.Errorf("failed to list settlements: %w", err)
		}
		return nil
	})
	return settlements, err
}

// GetPartySummary returns each user's net result, served from the cache when possible
func (a *PartyApp) GetPartySummary(ctx context.Context, partyID int64) (*entities.PartySummary, error) {
	if a.summaryCache != nil {
		cached, err := a.summaryCache.Get(ctx, partyID)
		if err != nil {
			log.WithError(err).WithField("partyID", partyID).Warn("Summary cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	var summary *entities.PartySummary
	err := a.withParty(ctx, partyID, func(uow interfaces.UnitOfWork) error {
		var err error
		summary, err = services.NewSummaryService(partyID, uow.WagerRepository(), uow.SettlementRepository()).GetPartySummary(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	if a.summaryCache != nil {
		if err := a.summaryCache.Set(ctx, summary); err != nil {
			log.WithError(err).WithField("partyID", partyID).Warn("Summary cache write failed")
		}
	}

	return summary, nil
}

// GetPaymentPlan returns the transfers that settle everyone's net result
func (a *PartyApp) GetPaymentPlan(ctx context.Context, partyID int64) ([]*entities.Transfer, error) {
	if a.summaryCache == nil {
		var transfers []*entities.Transfer
		err := a.withParty(ctx, partyID, func(uow interfaces.UnitOfWork) error {
			var err error
			transfers, err = services.NewSummaryService(partyID, uow.WagerRepository(), uow.SettlementRepository()).GetPaymentPlan(ctx)
			return err
		})
		return transfers, err
	}

	summary, err := a.GetPartySummary(ctx, partyID)
	if err != nil {
		return nil, err
	}
	return services.MinimizeDebts(summary.Users), nil
}

// InvalidateSummary drops the cached summary of a party
func (a *PartyApp) InvalidateSummary(ctx context.Context, partyID int64) {
	if a.summaryCache == nil {
		return
	}
	if err := a.summaryCache.Invalidate(ctx, partyID); err != nil {
		log.WithError(err).WithField("partyID", partyID).Warn("Summary cache invalidation failed")
	}
}
