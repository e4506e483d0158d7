package repository

import (
	"context"
	"testing"

	"partybets/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWagerRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	party := testutil.CreateTestParty(t, testDB.DB, "Game Night")
	betRepo := NewBetRepository(testDB.DB, party.ID)
	repo := NewWagerRepository(testDB.DB, party.ID)

	first, err := betRepo.Create(ctx, testutil.CreateTestBet("Who wins?", "Alice"), []string{"Chiefs", "Eagles"})
	require.NoError(t, err)
	second, err := betRepo.Create(ctx, testutil.CreateTestBet("MVP?", "Bob"), []string{"Mahomes", "Hurts"})
	require.NoError(t, err)

	t.Run("empty party totals zero", func(t *testing.T) {
		total, err := repo.TotalByParty(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("create assigns id and timestamp", func(t *testing.T) {
		wager := testutil.CreateTestWager(first.Bet.ID, "Alice", first.Options[0].ID, 50)
		require.NoError(t, repo.Create(ctx, wager))
		assert.NotZero(t, wager.ID)
		assert.False(t, wager.CreatedAt.IsZero())
	})

	t.Run("hedging is allowed", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, testutil.CreateTestWager(first.Bet.ID, "Alice", first.Options[0].ID, 10)))
		require.NoError(t, repo.Create(ctx, testutil.CreateTestWager(first.Bet.ID, "Alice", first.Options[1].ID, 15)))

		wagers, err := repo.ListByBet(ctx, first.Bet.ID)
		require.NoError(t, err)
		assert.Len(t, wagers, 3)
	})

	t.Run("total spans every bet in the party", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, testutil.CreateTestWager(second.Bet.ID, "Bob", second.Options[1].ID, 25)))

		total, err := repo.TotalByParty(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(100), total)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		err := repo.Create(ctx, testutil.CreateTestWager(first.Bet.ID, "Dan", first.Options[0].ID, 0))
		assert.Error(t, err)
	})

	t.Run("bet from another party is rejected", func(t *testing.T) {
		other := testutil.CreateTestParty(t, testDB.DB, "Other")
		otherRepo := NewWagerRepository(testDB.DB, other.ID)

		err := otherRepo.Create(ctx, testutil.CreateTestWager(first.Bet.ID, "Eve", first.Options[0].ID, 10))
		assert.Error(t, err)

		total, err := otherRepo.TotalByParty(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}
