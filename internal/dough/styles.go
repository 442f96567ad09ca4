package dough

import "fmt"

// StyleID identifies a pizza style in the catalog.
type StyleID string

const (
	StyleNeapolitan StyleID = "neapolitan"
	StyleNewYork    StyleID = "new_york"
	StyleDetroit    StyleID = "detroit"
	StyleSicilian   StyleID = "sicilian"
)

// Style describes one pizza style: its baker's percentages plus the numbers
// shown on the specs card. All percentages are relative to flour weight.
type Style struct {
	ID          StyleID
	Name        string
	Description string

	// Baker's percentages.
	Hydration float64
	Salt      float64
	Oil       float64
	Sugar     float64
	Yeast     float64

	// Hydration overrides outside this range are rejected.
	MinHydration int
	MaxHydration int

	// Specs card attributes.
	DefaultBallWeight int // grams
	FermentHours      int
	OvenCelsius       int
}

// Catalog order is the presentation order of the specs cards.
var styleOrder = []StyleID{StyleNeapolitan, StyleNewYork, StyleDetroit, StyleSicilian}

var styles = map[StyleID]Style{
	StyleNeapolitan: {
		ID:                StyleNeapolitan,
		Name:              "Neapolitan",
		Description:       "Soft, thin, leopard-spotted crust baked hot and fast.",
		Hydration:         0.62,
		Salt:              0.028,
		Oil:               0,
		Sugar:             0,
		Yeast:             0.002,
		MinHydration:      55,
		MaxHydration:      70,
		DefaultBallWeight: 250,
		FermentHours:      24,
		OvenCelsius:       485,
	},
	StyleNewYork: {
		ID:                StyleNewYork,
		Name:              "New York",
		Description:       "Large foldable slices with a crisp yet pliable crust.",
		Hydration:         0.63,
		Salt:              0.02,
		Oil:               0.025,
		Sugar:             0.02,
		Yeast:             0.004,
		MinHydration:      58,
		MaxHydration:      68,
		DefaultBallWeight: 300,
		FermentHours:      48,
		OvenCelsius:       290,
	},
	StyleDetroit: {
		ID:                StyleDetroit,
		Name:              "Detroit",
		Description:       "Airy pan pizza with caramelized cheese edges.",
		Hydration:         0.70,
		Salt:              0.02,
		Oil:               0.02,
		Sugar:             0.01,
		Yeast:             0.005,
		MinHydration:      65,
		MaxHydration:      80,
		DefaultBallWeight: 350,
		FermentHours:      24,
		OvenCelsius:       260,
	},
	StyleSicilian: {
		ID:                StyleSicilian,
		Name:              "Sicilian",
		Description:       "Thick, focaccia-like squares with an olive oil crust.",
		Hydration:         0.75,
		Salt:              0.022,
		Oil:               0.04,
		Sugar:             0.01,
		Yeast:             0.006,
		MinHydration:      68,
		MaxHydration:      85,
		DefaultBallWeight: 400,
		FermentHours:      24,
		OvenCelsius:       250,
	},
}

// Styles returns the full catalog in presentation order.
func Styles() []Style {
	out := make([]Style, 0, len(styleOrder))
	for _, id := range styleOrder {
		out = append(out, styles[id])
	}

	return out
}

// StyleByID looks up a style in the catalog.
func StyleByID(id StyleID) (Style, error) {
	s, ok := styles[id]
	if !ok {
		return Style{}, fmt.Errorf("unknown style %q", id)
	}

	return s, nil
}
