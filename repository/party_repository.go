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

// PartyRepository implements party data access
type PartyRepository struct {
	q Queryable
}

// NewPartyRepository creates a party repository on the pool
func NewPartyRepository(db *database.DB) *PartyRepository {
	return &PartyRepository{q: db.Pool}
}

// newPartyRepository creates a party repository bound to a transaction
func newPartyRepository(tx Queryable) interfaces.PartyRepository {
	return &PartyRepository{q: tx}
}

// Create creates a new party
func (r *PartyRepository) Create(ctx context.Context, name string) (*entities.Party, error) {
	query := `
		INSERT INTO parties (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`

	var party entities.Party
	err := r.q.QueryRow(ctx, query, name).Scan(&party.ID, &party.Name, &party.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create party: %w", err)
	}

	return &party, nil
}

// GetByID retrieves a party by its ID
func (r *PartyRepository) GetByID(ctx context.Context, id int64) (*entities.Party, error) {
	query := `
		SELECT id, name, created_at
		FROM parties
		WHERE id = $1
	`

	var party entities.Party
	err := r.q.QueryRow(ctx, query, id).Scan(&party.ID, &party.Name, &party.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get party: %w", err)
	}

	return &party, nil
}

// List returns all parties, newest first
func (r *PartyRepository) List(ctx context.Context) ([]*entities.Party, error) {
	query := `
		SELECT id, name, created_at
		FROM parties
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	parties := make([]*entities.Party, 0)
	for rows.Next() {
		var party entities.Party
		if err := rows.Scan(&party.ID, &party.Name, &party.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		parties = append(parties, &party)
	}

	return parties, rows.Err()
}
