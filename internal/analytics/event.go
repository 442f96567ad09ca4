package analytics

import "time"

// Topics for calculator analytics events.
const (
	TopicRecipeCalculated = "recipe.calculated"
	TopicRecipeSaved      = "recipe.saved"
)

// RecipeCalculatedEvent is emitted every time the calculator runs.
type RecipeCalculatedEvent struct {
	ID           string    `json:"id"`
	Style        string    `json:"style"`
	Pizzas       int       `json:"pizzas"`
	BallWeight   int       `json:"ballWeight"`
	Hydration    int       `json:"hydration"`
	TotalGrams   float64   `json:"totalGrams"`
	CalculatedAt time.Time `json:"calculatedAt"`
	ClientIP     string    `json:"clientIp"`
	UserAgent    string    `json:"userAgent"`
}

// RecipeSavedEvent is emitted when a recipe is saved with a share code.
type RecipeSavedEvent struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Style     string    `json:"style"`
	Name      string    `json:"name,omitempty"`
	SavedAt   time.Time `json:"savedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}
