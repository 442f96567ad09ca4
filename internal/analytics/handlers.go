package analytics

import (
	"context"

	"github.com/doughlab/doughcalc/internal/messaging"
)

// NewRecipeCalculatedHandler returns a handler persisting calculated events.
func NewRecipeCalculatedHandler(store Store) messaging.Handler[RecipeCalculatedEvent] {
	return func(ctx context.Context, event *RecipeCalculatedEvent) error {
		return store.SaveRecipeCalculated(ctx, event)
	}
}

// NewRecipeSavedHandler returns a handler persisting saved-recipe events.
func NewRecipeSavedHandler(store Store) messaging.Handler[RecipeSavedEvent] {
	return func(ctx context.Context, event *RecipeSavedEvent) error {
		return store.SaveRecipeSaved(ctx, event)
	}
}
