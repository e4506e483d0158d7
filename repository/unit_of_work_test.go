package repository

import (
	"context"
	"testing"

	"partybets/domain/entities"
	"partybets/domain/events"
	"partybets/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func TestUnitOfWork(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	party := testutil.CreateTestParty(t, testDB.DB, "Game Night")
	factory := NewUnitOfWorkFactory(testDB.DB)

	t.Run("getters panic before begin", func(t *testing.T) {
		uow := factory.CreateForParty(party.ID, &recordingPublisher{})
		assert.Panics(t, func() { uow.BetRepository() })
	})

	t.Run("commit persists", func(t *testing.T) {
		publisher := &recordingPublisher{}
		uow := factory.CreateForParty(party.ID, publisher)
		require.NoError(t, uow.Begin(ctx))

		detail, err := uow.BetRepository().Create(ctx, testutil.CreateTestBet("Committed?", "Alice"), []string{"Yes", "No"})
		require.NoError(t, err)
		require.NoError(t, uow.EventBus().Publish(events.BetCreatedEvent{PartyID: party.ID, BetID: detail.Bet.ID}))
		require.NoError(t, uow.Commit())

		bet, err := NewBetRepository(testDB.DB, party.ID).GetByID(ctx, detail.Bet.ID)
		require.NoError(t, err)
		assert.NotNil(t, bet)
		assert.Len(t, publisher.published, 1)
	})

	t.Run("rollback discards writes", func(t *testing.T) {
		uow := factory.CreateForParty(party.ID, &recordingPublisher{})
		require.NoError(t, uow.Begin(ctx))

		detail, err := uow.BetRepository().Create(ctx, testutil.CreateTestBet("Rolled back?", "Alice"), []string{"Yes", "No"})
		require.NoError(t, err)
		require.NoError(t, uow.Rollback())

		bet, err := NewBetRepository(testDB.DB, party.ID).GetByID(ctx, detail.Bet.ID)
		require.NoError(t, err)
		assert.Nil(t, bet)

		// A second rollback is harmless
		assert.NoError(t, uow.Rollback())
	})

	t.Run("concurrent settlement happens once", func(t *testing.T) {
		setup := factory.CreateForParty(party.ID, &recordingPublisher{})
		require.NoError(t, setup.Begin(ctx))
		detail, err := setup.BetRepository().Create(ctx, testutil.CreateTestBet("Race?", "Alice"), []string{"Yes", "No"})
		require.NoError(t, err)
		_, err = setup.BetRepository().TransitionStatus(ctx, detail.Bet.ID, entities.BetStatusOpen, entities.BetStatusClosed, nil)
		require.NoError(t, err)
		require.NoError(t, setup.Commit())

		winner := detail.Options[0].ID
		first := factory.CreateForParty(party.ID, &recordingPublisher{})
		second := factory.CreateForParty(party.ID, &recordingPublisher{})
		require.NoError(t, first.Begin(ctx))
		require.NoError(t, second.Begin(ctx))

		locked, err := first.BetRepository().GetDetailByIDForUpdate(ctx, detail.Bet.ID)
		require.NoError(t, err)
		require.Equal(t, entities.BetStatusClosed, locked.Bet.Status)

		updated, err := first.BetRepository().TransitionStatus(ctx, detail.Bet.ID, entities.BetStatusClosed, entities.BetStatusSettled, &winner)
		require.NoError(t, err)
		require.True(t, updated)

		done := make(chan bool, 1)
		go func() {
			// Blocks on the row lock until the first transaction commits
			ok, err := second.BetRepository().TransitionStatus(ctx, detail.Bet.ID, entities.BetStatusClosed, entities.BetStatusSettled, &winner)
			if err != nil {
				ok = true
			}
			done <- ok
		}()

		require.NoError(t, first.Commit())
		assert.False(t, <-done)
		require.NoError(t, second.Rollback())
	})
}
