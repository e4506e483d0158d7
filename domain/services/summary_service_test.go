package services

import (
	"errors"
	"testing"

	"partybets/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSummaryService_GetPartySummary(t *testing.T) {
	fixture := NewBetTestFixture(t)
	fixture.Mocks.SettlementRepo.On("ListByParty", mock.Anything).Return([]*entities.Settlement{
		settlement(1, "Alice", "20"),
		settlement(2, "Alice", "-40"),
		settlement(2, "Bob", "40"),
		settlement(1, "Carol", "-20"),
	}, nil)
	fixture.Mocks.WagerRepo.On("TotalByParty", mock.Anything).Return(int64(135), nil)

	summary, err := fixture.Summary.GetPartySummary(fixture.Ctx)

	require.NoError(t, err)
	assert.Equal(t, TestPartyID, summary.PartyID)
	assert.Equal(t, int64(135), summary.TotalPot)
	require.Len(t, summary.Users, 3)
	assert.Equal(t, "Bob", summary.Users[0].UserName)
	assert.Equal(t, "Alice", summary.Users[1].UserName)
	assert.True(t, dec("-20").Equal(summary.Users[1].NetAmount))
	assert.Equal(t, "Carol", summary.Users[2].UserName)
	fixture.AssertAllMocks()
}

func TestSummaryService_GetPaymentPlan(t *testing.T) {
	fixture := NewBetTestFixture(t)
	fixture.Mocks.SettlementRepo.On("ListByParty", mock.Anything).Return([]*entities.Settlement{
		settlement(1, "Bob", "13.33"),
		settlement(1, "Alice", "1.67"),
		settlement(1, "Carol", "-15"),
	}, nil)
	fixture.Mocks.WagerRepo.On("TotalByParty", mock.Anything).Return(int64(50), nil)

	transfers, err := fixture.Summary.GetPaymentPlan(fixture.Ctx)

	require.NoError(t, err)
	require.Len(t, transfers, 2)
	assert.Equal(t, "Carol", transfers[0].From)
	assert.Equal(t, "Bob", transfers[0].To)
	assert.True(t, dec("13.33").Equal(transfers[0].Amount))
	assert.Equal(t, "Alice", transfers[1].To)
	fixture.AssertAllMocks()
}

func TestSummaryService_Errors(t *testing.T) {
	t.Run("settlement lookup fails", func(t *testing.T) {
		fixture := NewBetTestFixture(t)
		fixture.Mocks.SettlementRepo.On("ListByParty", mock.Anything).Return(nil, errors.New("db error"))

		_, err := fixture.Summary.GetPartySummary(fixture.Ctx)
		assert.EqualError(t, err, "failed to list settlements: db error")
	})

	t.Run("total pot fails", func(t *testing.T) {
		fixture := NewBetTestFixture(t)
		fixture.Mocks.SettlementRepo.On("ListByParty", mock.Anything).Return([]*entities.Settlement{}, nil)
		fixture.Mocks.WagerRepo.On("TotalByParty", mock.Anything).Return(int64(0), errors.New("db error"))

		_, err := fixture.Summary.GetPaymentPlan(fixture.Ctx)
		assert.EqualError(t, err, "failed to get total pot: db error")
	})
}
