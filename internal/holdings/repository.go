package holdings

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minglun/v32/backend/internal/contracts"
)

// Repository implements contracts.PositionStore on PostgreSQL.
// The record shape {Code, Type, Cost, Shares, Note} is the externally
// visible storage contract.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new holdings repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all positions in insertion order
func (r *Repository) List(ctx context.Context) ([]contracts.Position, error) {
	query := `
		SELECT id, code, type, cost, shares, note
		FROM watchlist.positions
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []contracts.Position
	for rows.Next() {
		var p contracts.Position
		if err := rows.Scan(&p.ID, &p.Code, &p.Type, &p.Cost, &p.Shares, &p.Note); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// Add inserts a position and returns its id
func (r *Repository) Add(ctx context.Context, p contracts.Position) (int64, error) {
	if err := validate(p); err != nil {
		return 0, err
	}

	query := `
		INSERT INTO watchlist.positions (code, type, cost, shares, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query, p.Code, p.Type, p.Cost, p.Shares, p.Note).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Delete removes a position by id
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM watchlist.positions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("position %d not found", id)
	}
	return nil
}

// ReplaceAll overwrites the stored set with the given records
func (r *Repository) ReplaceAll(ctx context.Context, positions []contracts.Position) error {
	for _, p := range positions {
		if err := validate(p); err != nil {
			return err
		}
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM watchlist.positions`); err != nil {
			return err
		}

		for _, p := range positions {
			_, err := tx.Exec(ctx,
				`INSERT INTO watchlist.positions (code, type, cost, shares, note) VALUES ($1, $2, $3, $4, $5)`,
				p.Code, p.Type, p.Cost, p.Shares, p.Note,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func validate(p contracts.Position) error {
	if p.Code == "" {
		return fmt.Errorf("position code is required")
	}
	if p.Type != contracts.PositionDefensive && p.Type != contracts.PositionAggressive {
		return fmt.Errorf("position type must be %q or %q", contracts.PositionDefensive, contracts.PositionAggressive)
	}
	if p.Cost <= 0 {
		return fmt.Errorf("position cost must be positive")
	}
	if p.Shares <= 0 {
		return fmt.Errorf("position shares must be positive")
	}
	return nil
}
