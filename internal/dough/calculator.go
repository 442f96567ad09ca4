package dough

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidPizzas     = errors.New("pizzas must be between 1 and 100")
	ErrInvalidBallWeight = errors.New("ball weight must be between 100 and 1000 grams")
)

// Input is one calculator run.
type Input struct {
	Style      StyleID
	Pizzas     int
	BallWeight int // grams, 0 means style default
	Hydration  int // percent, 0 means style default
}

// Formula is the calculated ingredient list in grams.
type Formula struct {
	Style       Style
	Pizzas      int
	BallWeight  int
	Hydration   int // the effective hydration percent
	FlourGrams  float64
	WaterGrams  float64
	SaltGrams   float64
	OilGrams    float64
	SugarGrams  float64
	YeastGrams  float64
	TotalGrams  float64
}

// Calculate converts a calculator input into an ingredient formula using
// baker's percentages: total dough weight is pizzas times ball weight, flour
// is the share left once every percentage-based ingredient is accounted for,
// and each remaining ingredient is flour times its percentage.
func Calculate(in Input) (*Formula, error) {
	style, err := StyleByID(in.Style)
	if err != nil {
		return nil, err
	}

	if in.Pizzas < 1 || in.Pizzas > 100 {
		return nil, ErrInvalidPizzas
	}

	ballWeight := in.BallWeight
	if ballWeight == 0 {
		ballWeight = style.DefaultBallWeight
	}

	if ballWeight < 100 || ballWeight > 1000 {
		return nil, ErrInvalidBallWeight
	}

	hydrationPct := in.Hydration
	if hydrationPct == 0 {
		hydrationPct = int(math.Round(style.Hydration * 100))
	}

	if hydrationPct < style.MinHydration || hydrationPct > style.MaxHydration {
		return nil, fmt.Errorf("hydration for %s must be between %d%% and %d%%",
			style.Name, style.MinHydration, style.MaxHydration)
	}

	hydration := float64(hydrationPct) / 100

	total := float64(in.Pizzas * ballWeight)
	flour := total / (1 + hydration + style.Salt + style.Oil + style.Sugar + style.Yeast)

	f := &Formula{
		Style:      style,
		Pizzas:     in.Pizzas,
		BallWeight: ballWeight,
		Hydration:  hydrationPct,
		FlourGrams: round1(flour),
		WaterGrams: round1(flour * hydration),
		SaltGrams:  round1(flour * style.Salt),
		OilGrams:   round1(flour * style.Oil),
		SugarGrams: round1(flour * style.Sugar),
		YeastGrams: round1(flour * style.Yeast),
		TotalGrams: total,
	}

	return f, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
