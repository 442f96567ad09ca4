package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/doughlab/doughcalc/internal/analytics"
	"github.com/doughlab/doughcalc/internal/dough"
	"github.com/doughlab/doughcalc/internal/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CodeGenerator generates unique share codes.
type CodeGenerator func() string

// RecipeHandler handles saving and fetching shareable recipes.
type RecipeHandler struct {
	store        dough.Repository
	generateCode CodeGenerator
	baseURL      string
	publishSaved messaging.Publish[analytics.RecipeSavedEvent]
	logger       *zap.Logger
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(
	store dough.Repository,
	generateCode CodeGenerator,
	baseURL string,
	publishSaved messaging.Publish[analytics.RecipeSavedEvent],
	logger *zap.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		store:        store,
		generateCode: generateCode,
		baseURL:      baseURL,
		publishSaved: publishSaved,
		logger:       logger,
	}
}

// SaveRecipe validates the input by running the calculator once, then stores
// the recipe under a fresh share code.
func (h *RecipeHandler) SaveRecipe(ctx context.Context, req *SaveRecipeRequest) (*SaveRecipeResponse, error) {
	input := dough.Input{
		Style:      dough.StyleID(req.Body.Style),
		Pizzas:     req.Body.Pizzas,
		BallWeight: req.Body.BallWeight,
		Hydration:  req.Body.Hydration,
	}

	formula, err := dough.Calculate(input)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	recipe := &dough.Recipe{
		Code:       dough.ShareCode(h.generateCode()),
		Name:       req.Body.Name,
		Style:      formula.Style.ID,
		Pizzas:     formula.Pizzas,
		BallWeight: formula.BallWeight,
		Hydration:  formula.Hydration,
		CreatedAt:  time.Now(),
	}

	if err := h.store.Save(ctx, recipe); err != nil {
		return nil, huma.Error500InternalServerError("failed to save recipe")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.RecipeSavedEvent{
		ID:        uuid.NewString(),
		Code:      string(recipe.Code),
		Style:     string(recipe.Style),
		Name:      recipe.Name,
		SavedAt:   recipe.CreatedAt,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishSaved(event); err != nil {
		h.logger.Error("failed to publish saved event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	shareURL := fmt.Sprintf("%s/recipes/%s", h.baseURL, recipe.Code)

	resp := &SaveRecipeResponse{}
	resp.Headers.Location = shareURL
	resp.Body.Code = string(recipe.Code)
	resp.Body.ShareURL = shareURL

	return resp, nil
}

// GetRecipe fetches a saved recipe and recomputes its formula.
func (h *RecipeHandler) GetRecipe(ctx context.Context, req *GetRecipeRequest) (*GetRecipeResponse, error) {
	recipe, err := h.store.GetByCode(ctx, dough.ShareCode(req.Code))
	if err != nil {
		if errors.Is(err, dough.ErrNotFound) {
			return nil, huma.Error404NotFound("recipe not found")
		}

		return nil, huma.Error500InternalServerError("failed to get recipe")
	}

	formula, err := dough.Calculate(dough.Input{
		Style:      recipe.Style,
		Pizzas:     recipe.Pizzas,
		BallWeight: recipe.BallWeight,
		Hydration:  recipe.Hydration,
	})
	if err != nil {
		// A stored recipe that no longer calculates means the style catalog
		// changed underneath it.
		h.logger.Error("stored recipe no longer calculates",
			zap.String("code", string(recipe.Code)),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to calculate recipe")
	}

	resp := &GetRecipeResponse{}
	resp.Body.Code = string(recipe.Code)
	resp.Body.Name = recipe.Name
	resp.Body.Style = string(recipe.Style)
	resp.Body.Pizzas = recipe.Pizzas
	resp.Body.BallWeight = recipe.BallWeight
	resp.Body.Hydration = recipe.Hydration
	resp.Body.Ingredients = ingredientsBody(formula)

	return resp, nil
}
