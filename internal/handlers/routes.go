package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/doughlab/doughcalc/internal/ratelimit"
)

// RegisterRoutes registers all calculator routes with per-endpoint
// fixed-window configuration for the distributed limiter. The calculator
// endpoint is additionally guarded by the in-process limiter inside its
// handler.
func RegisterRoutes(api huma.API, calc *CalcHandler, recipes *RecipeHandler) {
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/calculate",
		Summary:     "Calculate a dough formula",
		Description: "Computes flour, water, salt, oil, sugar and yeast weights for a style using baker's percentages.",
		Tags:        []string{"Calculator"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Config: ratelimit.Config{Interval: 10 * time.Second, Limit: 10},
			},
		},
	}, calc.Calculate)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/styles",
		Summary:     "List pizza styles",
		Description: "Returns the specs card catalog with baker's percentages per style.",
		Tags:        []string{"Styles"},
	}, calc.ListStyles)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/styles/{style}",
		Summary:     "Get one pizza style",
		Tags:        []string{"Styles"},
	}, calc.GetStyle)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/limits",
		Summary:     "Remaining calculator quota",
		Description: "Reports how many calculator calls the caller has left in the current minute and day.",
		Tags:        []string{"Calculator"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, calc.GetLimits)

	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/recipes",
		Summary:     "Save a shareable recipe",
		Tags:        []string{"Recipes"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Config: ratelimit.Config{Interval: time.Minute, Limit: 10},
			},
		},
	}, recipes.SaveRecipe)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/recipes/{code}",
		Summary: "Get a saved recipe",
		Tags:    []string{"Recipes"},
	}, recipes.GetRecipe)
}
