package services

import (
	"context"
	"testing"
	"time"

	"partybets/config"
	"partybets/domain/entities"
	"partybets/domain/events"
	"partybets/domain/testhelpers"

	"github.com/stretchr/testify/mock"
)

// Test constants for consistent test data
const (
	TestPartyID     = int64(1)
	TestBetID       = int64(10)
	TestOption1ID   = int64(100)
	TestOption2ID   = int64(101)
	TestCreatorName = "Alice"
)

var fixedNow = time.Date(2026, 2, 8, 23, 30, 0, 0, time.UTC)

// TestMocks aggregates all repository mocks for testing
type TestMocks struct {
	PartyRepo      *testhelpers.MockPartyRepository
	BetRepo        *testhelpers.MockBetRepository
	WagerRepo      *testhelpers.MockWagerRepository
	SettlementRepo *testhelpers.MockSettlementRepository
	EventPublisher *testhelpers.MockEventPublisher
}

// NewTestMocks creates a new set of mocks
func NewTestMocks() *TestMocks {
	return &TestMocks{
		PartyRepo:      &testhelpers.MockPartyRepository{},
		BetRepo:        &testhelpers.MockBetRepository{},
		WagerRepo:      &testhelpers.MockWagerRepository{},
		SettlementRepo: &testhelpers.MockSettlementRepository{},
		EventPublisher: &testhelpers.MockEventPublisher{},
	}
}

// AssertAllExpectations verifies all mock expectations were met
func (m *TestMocks) AssertAllExpectations(t *testing.T) {
	m.PartyRepo.AssertExpectations(t)
	m.BetRepo.AssertExpectations(t)
	m.WagerRepo.AssertExpectations(t)
	m.SettlementRepo.AssertExpectations(t)
	m.EventPublisher.AssertExpectations(t)
}

// MockHelper provides common mock setup patterns
type MockHelper struct {
	mocks *TestMocks
	ctx   context.Context
}

// NewMockHelper creates a new mock helper
func NewMockHelper(mocks *TestMocks) *MockHelper {
	return &MockHelper{
		mocks: mocks,
		ctx:   context.Background(),
	}
}

// ExpectBetLookup sets up bet repository mock expectations
func (h *MockHelper) ExpectBetLookup(betID int64, bet *entities.Bet) {
	h.mocks.BetRepo.On("GetByID", mock.Anything, betID).Return(bet, nil)
}

// ExpectBetNotFound sets up bet repository mock to return not found
func (h *MockHelper) ExpectBetNotFound(betID int64) {
	h.mocks.BetRepo.On("GetByID", mock.Anything, betID).Return(nil, nil)
}

// ExpectDetailLookup sets up bet detail repository mock expectations
func (h *MockHelper) ExpectDetailLookup(betID int64, detail *entities.BetDetail) {
	h.mocks.BetRepo.On("GetDetailByID", mock.Anything, betID).Return(detail, nil)
}

// ExpectDetailForUpdate sets up the locking bet detail lookup
func (h *MockHelper) ExpectDetailForUpdate(betID int64, detail *entities.BetDetail) {
	h.mocks.BetRepo.On("GetDetailByIDForUpdate", mock.Anything, betID).Return(detail, nil)
}

// ExpectTransition sets up a conditional status update
func (h *MockHelper) ExpectTransition(betID int64, from, to entities.BetStatus, applied bool) {
	h.mocks.BetRepo.On("TransitionStatus", mock.Anything, betID, from, to, mock.Anything).Return(applied, nil)
}

// ExpectEventPublish sets up event publisher mock expectations
func (h *MockHelper) ExpectEventPublish(eventType events.EventType) {
	h.mocks.EventPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Type() == eventType
	})).Return(nil)
}

// SetupTestConfig configures the test environment
func SetupTestConfig(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.HostPIN = testHostPIN
	config.SetTestConfig(cfg)
	t.Cleanup(config.ResetConfig)
}

// newBetDetail builds a bet with two options and the given wagers
func newBetDetail(status entities.BetStatus, wagers ...*entities.Wager) *entities.BetDetail {
	for _, w := range wagers {
		w.BetID = TestBetID
	}
	return &entities.BetDetail{
		Bet: &entities.Bet{
			ID:          TestBetID,
			PartyID:     TestPartyID,
			Question:    "Who wins the game?",
			Status:      status,
			CreatorName: TestCreatorName,
			CreatedAt:   fixedNow,
		},
		Options: []*entities.BetOption{
			{ID: TestOption1ID, BetID: TestBetID, Label: "Chiefs", OptionOrder: 0},
			{ID: TestOption2ID, BetID: TestBetID, Label: "Eagles", OptionOrder: 1},
		},
		Wagers: wagers,
	}
}
