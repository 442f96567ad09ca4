package store

import (
	"context"

	"github.com/doughlab/doughcalc/internal/analytics"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is a PostgreSQL implementation of analytics.Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new PostgreSQL-backed analytics store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) SaveRecipeCalculated(ctx context.Context, event *analytics.RecipeCalculatedEvent) error {
	query := `
		INSERT INTO recipe_calculated_events
			(id, style, pizzas, ball_weight, hydration, total_grams, calculated_at, client_ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.ID,
		event.Style,
		event.Pizzas,
		event.BallWeight,
		event.Hydration,
		event.TotalGrams,
		event.CalculatedAt,
		event.ClientIP,
		event.UserAgent,
	)

	return err
}

func (p *Postgres) SaveRecipeSaved(ctx context.Context, event *analytics.RecipeSavedEvent) error {
	query := `
		INSERT INTO recipe_saved_events
			(id, code, style, name, saved_at, client_ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.ID,
		event.Code,
		event.Style,
		event.Name,
		event.SavedAt,
		event.ClientIP,
		event.UserAgent,
	)

	return err
}
