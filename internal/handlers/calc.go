package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/doughlab/doughcalc/internal/analytics"
	"github.com/doughlab/doughcalc/internal/dough"
	"github.com/doughlab/doughcalc/internal/messaging"
	"github.com/doughlab/doughcalc/internal/ratelimit"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CalcHandler serves the dough calculator and the style specs cards.
type CalcHandler struct {
	limiter          *ratelimit.LocalLimiter
	publishCalculate messaging.Publish[analytics.RecipeCalculatedEvent]
	logger           *zap.Logger
}

// NewCalcHandler creates a new calculator handler.
func NewCalcHandler(
	limiter *ratelimit.LocalLimiter,
	publishCalculate messaging.Publish[analytics.RecipeCalculatedEvent],
	logger *zap.Logger,
) *CalcHandler {
	return &CalcHandler{
		limiter:          limiter,
		publishCalculate: publishCalculate,
		logger:           logger,
	}
}

// Calculate runs the calculator for one input. The local per-process limiter
// is consulted before anything is computed; which quota tripped is reported
// back to the caller.
func (h *CalcHandler) Calculate(ctx context.Context, req *CalculateRequest) (*CalculateResponse, error) {
	meta := RequestMetaFromContext(ctx)

	if err := h.limiter.Check(meta.ClientIP); err != nil {
		switch {
		case errors.Is(err, ratelimit.ErrMinuteLimitExceeded):
			return nil, huma.Error429TooManyRequests("per-minute limit reached, slow down")
		case errors.Is(err, ratelimit.ErrDailyLimitExceeded):
			return nil, huma.Error429TooManyRequests("daily limit reached, try again tomorrow")
		default:
			return nil, huma.Error500InternalServerError("rate limit check failed")
		}
	}

	formula, err := dough.Calculate(dough.Input{
		Style:      dough.StyleID(req.Body.Style),
		Pizzas:     req.Body.Pizzas,
		BallWeight: req.Body.BallWeight,
		Hydration:  req.Body.Hydration,
	})
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	event := &analytics.RecipeCalculatedEvent{
		ID:           uuid.NewString(),
		Style:        string(formula.Style.ID),
		Pizzas:       formula.Pizzas,
		BallWeight:   formula.BallWeight,
		Hydration:    formula.Hydration,
		TotalGrams:   formula.TotalGrams,
		CalculatedAt: time.Now(),
		ClientIP:     meta.ClientIP,
		UserAgent:    meta.UserAgent,
	}

	if err := h.publishCalculate(event); err != nil {
		h.logger.Error("failed to publish calculated event",
			zap.String("id", event.ID),
			zap.Error(err),
		)
	}

	resp := &CalculateResponse{}
	resp.Body.Style = string(formula.Style.ID)
	resp.Body.Pizzas = formula.Pizzas
	resp.Body.BallWeight = formula.BallWeight
	resp.Body.Hydration = formula.Hydration
	resp.Body.Ingredients = ingredientsBody(formula)

	return resp, nil
}

// ListStyles returns the full specs card catalog.
func (h *CalcHandler) ListStyles(_ context.Context, _ *struct{}) (*ListStylesResponse, error) {
	resp := &ListStylesResponse{}
	for _, style := range dough.Styles() {
		resp.Body.Styles = append(resp.Body.Styles, styleBody(style))
	}

	return resp, nil
}

// GetStyle returns a single specs card.
func (h *CalcHandler) GetStyle(_ context.Context, req *GetStyleRequest) (*GetStyleResponse, error) {
	style, err := dough.StyleByID(dough.StyleID(req.Style))
	if err != nil {
		return nil, huma.Error404NotFound("style not found")
	}

	return &GetStyleResponse{Body: styleBody(style)}, nil
}

// GetLimits reports the caller's remaining calculator quota. The counts can
// be briefly stale between checks; that is accepted.
func (h *CalcHandler) GetLimits(ctx context.Context, _ *struct{}) (*GetLimitsResponse, error) {
	meta := RequestMetaFromContext(ctx)
	remaining := h.limiter.Remaining(meta.ClientIP)

	resp := &GetLimitsResponse{}
	resp.Body.RemainingMinute = remaining.Minute
	resp.Body.RemainingDay = remaining.Day

	return resp, nil
}

func styleBody(style dough.Style) StyleBody {
	return StyleBody{
		ID:                string(style.ID),
		Name:              style.Name,
		Description:       style.Description,
		HydrationPercent:  style.Hydration * 100,
		SaltPercent:       style.Salt * 100,
		OilPercent:        style.Oil * 100,
		SugarPercent:      style.Sugar * 100,
		YeastPercent:      style.Yeast * 100,
		DefaultBallWeight: style.DefaultBallWeight,
		FermentHours:      style.FermentHours,
		OvenCelsius:       style.OvenCelsius,
	}
}

func ingredientsBody(formula *dough.Formula) IngredientsBody {
	return IngredientsBody{
		FlourGrams: formula.FlourGrams,
		WaterGrams: formula.WaterGrams,
		SaltGrams:  formula.SaltGrams,
		OilGrams:   formula.OilGrams,
		SugarGrams: formula.SugarGrams,
		YeastGrams: formula.YeastGrams,
		TotalGrams: formula.TotalGrams,
	}
}
