package repository

import (
	"context"
	"errors"
	"fmt"

	"partybets/database"
	"partybets/domain/entities"
	"partybets/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// WagerRepository implements wager data access for one party
type WagerRepository struct {
	q       Queryable
	partyID int64
}

// NewWagerRepository creates a wager repository on the pool scoped to a party
func NewWagerRepository(db *database.DB, partyID int64) *WagerRepository {
	return &WagerRepository{q: db.Pool, partyID: partyID}
}

// newWagerRepository creates a wager repository with a transaction and party scope
func newWagerRepository(tx Queryable, partyID int64) interfaces.WagerRepository {
	return &WagerRepository{
		q:       tx,
		partyID: partyID,
	}
}

// Create records a new wager on a bet belonging to the party
func (r *WagerRepository) Create(ctx context.Context, wager *entities.Wager) error {
	query := `
		INSERT INTO wagers (bet_id, user_name, option_id, amount)
		SELECT b.id, $2, $3, $4
		FROM bets b
		WHERE b.id = $1 AND b.party_id = $5
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		wager.BetID,
		wager.UserName,
		wager.OptionID,
		wager.Amount,
		r.partyID,
	).Scan(&wager.ID, &wager.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("bet %d does not belong to party %d", wager.BetID, r.partyID)
	}
	if err != nil {
		return fmt.Errorf("failed to create wager: %w", err)
	}

	return nil
}

// ListByBet returns the wagers on a bet in the order they were placed
func (r *WagerRepository) ListByBet(ctx context.Context, betID int64) ([]*entities.Wager, error) {
	query := `
		SELECT w.id, w.bet_id, w.user_name, w.option_id, w.amount, w.created_at
		FROM wagers w
		JOIN bets b ON b.id = w.bet_id
		WHERE w.bet_id = $1 AND b.party_id = $2
		ORDER BY w.id
	`

	rows, err := r.q.Query(ctx, query, betID, r.partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wagers: %w", err)
	}
	defer rows.Close()

	wagers := make([]*entities.Wager, 0)
	for rows.Next() {
		var w entities.Wager
		if err := rows.Scan(&w.ID, &w.BetID, &w.UserName, &w.OptionID, &w.Amount, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wager: %w", err)
		}
		wagers = append(wagers, &w)
	}

	return wagers, rows.Err()
}

// TotalByParty returns the sum of every wager in the party regardless of bet status
func (r *WagerRepository) TotalByParty(ctx context.Context) (int64, error) {
	query := `
		SELECT COALESCE(SUM(w.amount), 0)::BIGINT
		FROM wagers w
		JOIN bets b ON b.id = w.bet_id
		WHERE b.party_id = $1
	`

	var total int64
	if err := r.q.QueryRow(ctx, query, r.partyID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum wagers: %w", err)
	}

	return total, nil
}
