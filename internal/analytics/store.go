package analytics

import "context"

// Store defines the interface for persisting analytics events.
type Store interface {
	SaveRecipeCalculated(ctx context.Context, event *RecipeCalculatedEvent) error
	SaveRecipeSaved(ctx context.Context, event *RecipeSavedEvent) error
}
