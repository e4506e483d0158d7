package testhelpers

import (
	"context"

	"partybets/domain/entities"
	"partybets/domain/events"
	"partybets/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockPartyRepository is a mock implementation of PartyRepository
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) Create(ctx context.Context, name string) (*entities.Party, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Party), args.Error(1)
}

func (m *MockPartyRepository) GetByID(ctx context.Context, id int64) (*entities.Party, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Party), args.Error(1)
}

func (m *MockPartyRepository) List(ctx context.Context) ([]*entities.Party, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Party), args.Error(1)
}

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) Create(ctx context.Context, bet *entities.Bet, options []string) (*entities.BetDetail, error) {
	args := m.Called(ctx, bet, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BetDetail), args.Error(1)
}

func (m *MockBetRepository) GetByID(ctx context.Context, id int64) (*entities.Bet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) GetDetailByID(ctx context.Context, id int64) (*entities.BetDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BetDetail), args.Error(1)
}

func (m *MockBetRepository) GetDetailByIDForUpdate(ctx context.Context, id int64) (*entities.BetDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BetDetail), args.Error(1)
}

func (m *MockBetRepository) ListByParty(ctx context.Context) ([]*entities.Bet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) TransitionStatus(ctx context.Context, betID int64, from, to entities.BetStatus, winningOptionID *int64) (bool, error) {
	args := m.Called(ctx, betID, from, to, winningOptionID)
	return args.Bool(0), args.Error(1)
}

// MockWagerRepository is a mock implementation of WagerRepository
type MockWagerRepository struct {
	mock.Mock
}

func (m *MockWagerRepository) Create(ctx context.Context, wager *entities.Wager) error {
	args := m.Called(ctx, wager)
	return args.Error(0)
}

func (m *MockWagerRepository) ListByBet(ctx context.Context, betID int64) ([]*entities.Wager, error) {
	args := m.Called(ctx, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Wager), args.Error(1)
}

func (m *MockWagerRepository) TotalByParty(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSettlementRepository is a mock implementation of SettlementRepository
type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) CreateBatch(ctx context.Context, settlements []*entities.Settlement) error {
	args := m.Called(ctx, settlements)
	return args.Error(0)
}

func (m *MockSettlementRepository) ListByParty(ctx context.Context) ([]*entities.Settlement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListByBet(ctx context.Context, betID int64) ([]*entities.Settlement, error) {
	args := m.Called(ctx, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Settlement), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockSummaryCache is a mock implementation of SummaryCache
type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) Get(ctx context.Context, partyID int64) (*entities.PartySummary, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PartySummary), args.Error(1)
}

func (m *MockSummaryCache) Set(ctx context.Context, summary *entities.PartySummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockSummaryCache) Invalidate(ctx context.Context, partyID int64) error {
	args := m.Called(ctx, partyID)
	return args.Error(0)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) PartyRepository() interfaces.PartyRepository {
	args := m.Called()
	return args.Get(0).(interfaces.PartyRepository)
}

func (m *MockUnitOfWork) BetRepository() interfaces.BetRepository {
	args := m.Called()
	return args.Get(0).(interfaces.BetRepository)
}

func (m *MockUnitOfWork) WagerRepository() interfaces.WagerRepository {
	args := m.Called()
	return args.Get(0).(interfaces.WagerRepository)
}

func (m *MockUnitOfWork) SettlementRepository() interfaces.SettlementRepository {
	args := m.Called()
	return args.Get(0).(interfaces.SettlementRepository)
}

func (m *MockUnitOfWork) EventBus() interfaces.EventPublisher {
	args := m.Called()
	return args.Get(0).(interfaces.EventPublisher)
}
