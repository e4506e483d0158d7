package services

import (
	"context"
	"testing"

	"partybets/domain/interfaces"
)

// BetTestFixture provides a complete test environment for bet service tests
type BetTestFixture struct {
	T       *testing.T
	Ctx     context.Context
	Service interfaces.BetService
	Summary interfaces.SummaryService
	Mocks   *TestMocks
	Helper  *MockHelper
}

// NewBetTestFixture creates a new test fixture with all dependencies configured
func NewBetTestFixture(t *testing.T) *BetTestFixture {
	SetupTestConfig(t)

	mocks := NewTestMocks()

	return &BetTestFixture{
		T:   t,
		Ctx: context.Background(),
		Service: NewBetService(
			TestPartyID,
			mocks.BetRepo,
			mocks.WagerRepo,
			mocks.SettlementRepo,
			mocks.EventPublisher,
		),
		Summary: NewSummaryService(TestPartyID, mocks.WagerRepo, mocks.SettlementRepo),
		Mocks:   mocks,
		Helper:  NewMockHelper(mocks),
	}
}

// AssertAllMocks verifies all mock expectations were met
func (f *BetTestFixture) AssertAllMocks() {
	f.Mocks.AssertAllExpectations(f.T)
}
