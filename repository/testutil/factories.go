package testutil

import (
	"context"
	"testing"

	"partybets/database"
	"partybets/domain/entities"

	"github.com/stretchr/testify/require"
)

// CreateTestParty inserts a party and returns it
func CreateTestParty(t *testing.T, db *database.DB, name string) *entities.Party {
	party := &entities.Party{Name: name}
	err := db.QueryRow(context.Background(),
		`INSERT INTO parties (name) VALUES ($1) RETURNING id, created_at`,
		name,
	).Scan(&party.ID, &party.CreatedAt)
	require.NoError(t, err)
	return party
}

// CreateTestBet builds an open bet with default values
func CreateTestBet(question, creatorName string) *entities.Bet {
	return &entities.Bet{
		Question:    question,
		Status:      entities.BetStatusOpen,
		CreatorName: creatorName,
	}
}

// CreateTestWager builds a wager on an option
func CreateTestWager(betID int64, userName string, optionID, amount int64) *entities.Wager {
	return &entities.Wager{
		BetID:    betID,
		UserName: userName,
		OptionID: optionID,
		Amount:   amount,
	}
}
