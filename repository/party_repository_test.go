package repository

import (
	"context"
	"testing"

	"partybets/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartyRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPartyRepository(testDB.DB)
	ctx := context.Background()

	t.Run("missing party returns nil", func(t *testing.T) {
		party, err := repo.GetByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, party)
	})

	t.Run("create and get", func(t *testing.T) {
		created, err := repo.Create(ctx, "Super Bowl Night")
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		party, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, party)
		assert.Equal(t, "Super Bowl Night", party.Name)
	})

	t.Run("list newest first", func(t *testing.T) {
		second, err := repo.Create(ctx, "Oscars")
		require.NoError(t, err)

		parties, err := repo.List(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(parties), 2)
		assert.Equal(t, second.ID, parties[0].ID)
	})
}
