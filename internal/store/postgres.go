package store

import (
	"context"
	"errors"

	"github.com/doughlab/doughcalc/internal/dough"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a PostgreSQL implementation of dough.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed recipe store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Save(ctx context.Context, recipe *dough.Recipe) error {
	query := `
		INSERT INTO recipes (code, name, style, pizzas, ball_weight, hydration, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (code) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		string(recipe.Code),
		recipe.Name,
		string(recipe.Style),
		recipe.Pizzas,
		recipe.BallWeight,
		recipe.Hydration,
		recipe.CreatedAt,
	)

	return err
}

func (p *PostgresStore) GetByCode(ctx context.Context, code dough.ShareCode) (*dough.Recipe, error) {
	query := `
		SELECT code, name, style, pizzas, ball_weight, hydration, created_at
		FROM recipes
		WHERE code = $1
	`

	var recipe dough.Recipe

	err := p.pool.QueryRow(ctx, query, string(code)).Scan(
		&recipe.Code,
		&recipe.Name,
		&recipe.Style,
		&recipe.Pizzas,
		&recipe.BallWeight,
		&recipe.Hydration,
		&recipe.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dough.ErrNotFound
		}

		return nil, err
	}

	return &recipe, nil
}
