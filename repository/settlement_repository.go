package repository

import (
	"context"
	"fmt"

	"partybets/database"
	"partybets/domain/entities"
	"partybets/domain/interfaces"
	"partybets/domain/utils"

	"github.com/jackc/pgx/v5"
)

// SettlementRepository implements settlement data access for one party.
// Money columns hold cents.
type SettlementRepository struct {
	q       Queryable
	partyID int64
}

// NewSettlementRepository creates a settlement repository on the pool scoped to a party
func NewSettlementRepository(db *database.DB, partyID int64) *SettlementRepository {
	return &SettlementRepository{q: db.Pool, partyID: partyID}
}

// newSettlementRepository creates a settlement repository with a transaction and party scope
func newSettlementRepository(tx Queryable, partyID int64) interfaces.SettlementRepository {
	return &SettlementRepository{
		q:       tx,
		partyID: partyID,
	}
}

// CreateBatch records the settlements of one bet. A second settlement for the same
// (bet, user) violates the unique constraint and fails the whole batch.
func (r *SettlementRepository) CreateBatch(ctx context.Context, settlements []*entities.Settlement) error {
	if len(settlements) == 0 {
		return nil
	}

	query := `
		INSERT INTO settlements (bet_id, user_name, total_wagered, payout_cents, net_cents)
		VALUES
	`
	var args []any
	for i, s := range settlements {
		if i > 0 {
			query += ","
		}
		paramIndex := i * 5
		query += fmt.Sprintf(" ($%d, $%d, $%d, $%d, $%d)",
			paramIndex+1, paramIndex+2, paramIndex+3, paramIndex+4, paramIndex+5)
		args = append(args,
			s.BetID,
			s.UserName,
			s.TotalWagered,
			utils.ToCents(s.Payout),
			utils.ToCents(s.NetWinLoss),
		)
	}
	query += " RETURNING id, created_at"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create settlements: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(settlements) {
			return fmt.Errorf("unexpected number of rows returned")
		}
		if err := rows.Scan(&settlements[i].ID, &settlements[i].CreatedAt); err != nil {
			return fmt.Errorf("failed to scan settlement ID: %w", err)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to create settlements: %w", err)
	}

	return nil
}

// ListByParty returns every settlement for bets in the party
func (r *SettlementRepository) ListByParty(ctx context.Context) ([]*entities.Settlement, error) {
	query := `
		SELECT s.id, s.bet_id, s.user_name, s.total_wagered, s.payout_cents, s.net_cents, s.created_at
		FROM settlements s
		JOIN bets b ON b.id = s.bet_id
		WHERE b.party_id = $1
		ORDER BY s.bet_id, s.id
	`

	rows, err := r.q.Query(ctx, query, r.partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	return scanSettlements(rows)
}

// ListByBet returns the settlements of one bet
func (r *SettlementRepository) ListByBet(ctx context.Context, betID int64) ([]*entities.Settlement, error) {
	query := `
		SELECT s.id, s.bet_id, s.user_name, s.total_wagered, s.payout_cents, s.net_cents, s.created_at
		FROM settlements s
		JOIN bets b ON b.id = s.bet_id
		WHERE s.bet_id = $1 AND b.party_id = $2
		ORDER BY s.net_cents DESC, s.id
	`

	rows, err := r.q.Query(ctx, query, betID, r.partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	return scanSettlements(rows)
}

func scanSettlements(rows pgx.Rows) ([]*entities.Settlement, error) {
	settlements := make([]*entities.Settlement, 0)
	for rows.Next() {
		var s entities.Settlement
		var payoutCents, netCents int64
		if err := rows.Scan(&s.ID, &s.BetID, &s.UserName, &s.TotalWagered, &payoutCents, &netCents, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		s.Payout = utils.FromCents(payoutCents)
		s.NetWinLoss = utils.FromCents(netCents)
		settlements = append(settlements, &s)
	}
	return settlements, rows.Err()
}
