package store

import (
	"context"

	"github.com/doughlab/doughcalc/internal/analytics"
	"go.uber.org/zap"
)

// Noop is an analytics.Store that only logs events. Used when no analytics
// database is configured.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new logging no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveRecipeCalculated(_ context.Context, event *analytics.RecipeCalculatedEvent) error {
	n.logger.Info("recipe calculated event received",
		zap.String("id", event.ID),
		zap.String("style", event.Style),
		zap.Int("pizzas", event.Pizzas),
		zap.Float64("totalGrams", event.TotalGrams),
		zap.Time("calculatedAt", event.CalculatedAt),
	)

	return nil
}

func (n *Noop) SaveRecipeSaved(_ context.Context, event *analytics.RecipeSavedEvent) error {
	n.logger.Info("recipe saved event received",
		zap.String("id", event.ID),
		zap.String("code", event.Code),
		zap.String("style", event.Style),
		zap.Time("savedAt", event.SavedAt),
	)

	return nil
}
