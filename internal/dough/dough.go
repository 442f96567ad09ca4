package dough

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a saved recipe does not exist.
var ErrNotFound = errors.New("recipe not found")

// ShareCode identifies a saved recipe.
type ShareCode string

// Recipe is a saved calculator input that can be shared by code.
type Recipe struct {
	Code       ShareCode
	Name       string
	Style      StyleID
	Pizzas     int
	BallWeight int // grams
	Hydration  int // percent of flour weight, 0 means style default
	CreatedAt  time.Time
}

// Repository defines storage for saved recipes.
type Repository interface {
	Save(ctx context.Context, recipe *Recipe) error

	// GetByCode retrieves a recipe by its share code.
	// Returns ErrNotFound if no recipe exists under the code.
	GetByCode(ctx context.Context, code ShareCode) (*Recipe, error)
}
