package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"partybets/database"
	"partybets/domain/entities"
	"partybets/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const betColumns = `
	id, party_id, question, status, winning_option_id, creator_name,
	created_at, closed_at, settled_at
`

// BetRepository implements bet and option data access for one party
type BetRepository struct {
	q       Queryable
	partyID int64
}

// NewBetRepository creates a bet repository on the pool scoped to a party
func NewBetRepository(db *database.DB, partyID int64) *BetRepository {
	return &BetRepository{q: db.Pool, partyID: partyID}
}

// newBetRepository creates a bet repository with a transaction and party scope
func newBetRepository(tx Queryable, partyID int64) interfaces.BetRepository {
	return &BetRepository{
		q:       tx,
		partyID: partyID,
	}
}

// Create creates a bet together with its options
func (r *BetRepository) Create(ctx context.Context, bet *entities.Bet, options []string) (*entities.BetDetail, error) {
	query := `
		INSERT INTO bets (party_id, question, status, creator_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	bet.PartyID = r.partyID
	err := r.q.QueryRow(ctx, query,
		r.partyID, // Use repository's party scope
		bet.Question,
		bet.Status,
		bet.CreatorName,
	).Scan(&bet.ID, &bet.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	optionQuery := `
		INSERT INTO bet_options (bet_id, label, option_order)
		VALUES
	`
	var args []any
	for i, label := range options {
		if i > 0 {
			optionQuery += ","
		}
		paramIndex := i * 3
		optionQuery += fmt.Sprintf(" ($%d, $%d, $%d)", paramIndex+1, paramIndex+2, paramIndex+3)
		args = append(args, bet.ID, label, int16(i))
	}
	optionQuery += " RETURNING id, bet_id, label, option_order"

	rows, err := r.q.Query(ctx, optionQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bet options: %w", err)
	}
	defer rows.Close()

	created, err := scanOptions(rows)
	if err != nil {
		return nil, err
	}
	if len(created) != len(options) {
		return nil, fmt.Errorf("unexpected number of options created: %d", len(created))
	}

	return &entities.BetDetail{
		Bet:     bet,
		Options: created,
		Wagers:  []*entities.Wager{},
	}, nil
}

// GetByID retrieves a bet by its ID
func (r *BetRepository) GetByID(ctx context.Context, id int64) (*entities.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1 AND party_id = $2`
	return r.getBet(ctx, query, id)
}

// GetDetailByID retrieves a bet with its options and wagers
func (r *BetRepository) GetDetailByID(ctx context.Context, id int64) (*entities.BetDetail, error) {
	bet, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.loadDetail(ctx, bet)
}

// GetDetailByIDForUpdate retrieves a bet detail and locks the bet row until the transaction ends
func (r *BetRepository) GetDetailByIDForUpdate(ctx context.Context, id int64) (*entities.BetDetail, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1 AND party_id = $2 FOR UPDATE`
	bet, err := r.getBet(ctx, query, id)
	if err != nil {
		return nil, err
	}
	return r.loadDetail(ctx, bet)
}

// ListByParty returns every bet in the party, newest first
func (r *BetRepository) ListByParty(ctx context.Context) ([]*entities.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE party_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.q.Query(ctx, query, r.partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}
	defer rows.Close()

	bets := make([]*entities.Bet, 0)
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}

	return bets, rows.Err()
}

// TransitionStatus moves a bet forward only while it is still in the expected status
func (r *BetRepository) TransitionStatus(ctx context.Context, betID int64, from, to entities.BetStatus, winningOptionID *int64) (bool, error) {
	var query string
	var args []any

	switch to {
	case entities.BetStatusClosed:
		query = `
			UPDATE bets
			SET status = $1, closed_at = NOW()
			WHERE id = $2 AND party_id = $3 AND status = $4
		`
		args = []any{to, betID, r.partyID, from}
	case entities.BetStatusSettled:
		if winningOptionID == nil {
			return false, fmt.Errorf("winning option is required to settle bet %d", betID)
		}
		query = `
			UPDATE bets
			SET status = $1, winning_option_id = $2, settled_at = NOW()
			WHERE id = $3 AND party_id = $4 AND status = $5
		`
		args = []any{to, *winningOptionID, betID, r.partyID, from}
	default:
		return false, fmt.Errorf("cannot transition bet to status %q", to)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update bet status: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *BetRepository) getBet(ctx context.Context, query string, id int64) (*entities.Bet, error) {
	bet, err := scanBet(r.q.QueryRow(ctx, query, id, r.partyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	return bet, nil
}

func (r *BetRepository) loadDetail(ctx context.Context, bet *entities.Bet) (*entities.BetDetail, error) {
	if bet == nil {
		return nil, nil
	}

	options, err := r.getOptions(ctx, bet.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get options: %w", err)
	}

	wagers, err := newWagerRepository(r.q, r.partyID).ListByBet(ctx, bet.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wagers: %w", err)
	}

	return &entities.BetDetail{
		Bet:     bet,
		Options: options,
		Wagers:  wagers,
	}, nil
}

func (r *BetRepository) getOptions(ctx context.Context, betID int64) ([]*entities.BetOption, error) {
	query := `
		SELECT id, bet_id, label, option_order
		FROM bet_options
		WHERE bet_id = $1
		ORDER BY option_order
	`

	rows, err := r.q.Query(ctx, query, betID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOptions(rows)
}

func scanBet(row pgx.Row) (*entities.Bet, error) {
	var bet entities.Bet
	err := row.Scan(
		&bet.ID,
		&bet.PartyID,
		&bet.Question,
		&bet.Status,
		&bet.WinningOptionID,
		&bet.CreatorName,
		&bet.CreatedAt,
		&bet.ClosedAt,
		&bet.SettledAt,
	)
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

func scanOptions(rows pgx.Rows) ([]*entities.BetOption, error) {
	options := make([]*entities.BetOption, 0)
	for rows.Next() {
		var opt entities.BetOption
		if err := rows.Scan(&opt.ID, &opt.BetID, &opt.Label, &opt.OptionOrder); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, &opt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(options, func(i, j int) bool {
		return options[i].OptionOrder < options[j].OptionOrder
	})
	return options, nil
}
