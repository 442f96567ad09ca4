package handlers

// CalculateRequest is the request body for a calculator run.
type CalculateRequest struct {
	Body struct {
		Style      string `doc:"Pizza style"                                  enum:"neapolitan,new_york,detroit,sicilian" example:"neapolitan" json:"style"`
		Pizzas     int    `doc:"Number of dough balls"                        example:"4"                                 json:"pizzas"       maximum:"100" minimum:"1"`
		BallWeight int    `doc:"Weight per dough ball in grams (0 = default)" example:"250"                               json:"ballWeight,omitempty"`
		Hydration  int    `doc:"Hydration percent override (0 = default)"     example:"65"                                json:"hydration,omitempty"`
	}
}

// IngredientsBody lists the calculated ingredients in grams.
type IngredientsBody struct {
	FlourGrams float64 `doc:"Flour in grams" json:"flourGrams"`
	WaterGrams float64 `doc:"Water in grams" json:"waterGrams"`
	SaltGrams  float64 `doc:"Salt in grams"  json:"saltGrams"`
	OilGrams   float64 `doc:"Oil in grams"   json:"oilGrams"`
	SugarGrams float64 `doc:"Sugar in grams" json:"sugarGrams"`
	YeastGrams float64 `doc:"Yeast in grams" json:"yeastGrams"`
	TotalGrams float64 `doc:"Total dough weight in grams" json:"totalGrams"`
}

// CalculateResponse is the calculated formula.
type CalculateResponse struct {
	Body struct {
		Style       string          `json:"style"`
		Pizzas      int             `json:"pizzas"`
		BallWeight  int             `json:"ballWeight"`
		Hydration   int             `json:"hydration"`
		Ingredients IngredientsBody `json:"ingredients"`
	}
}

// StyleBody is one specs card entry.
type StyleBody struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	HydrationPercent  float64 `json:"hydrationPercent"`
	SaltPercent       float64 `json:"saltPercent"`
	OilPercent        float64 `json:"oilPercent"`
	SugarPercent      float64 `json:"sugarPercent"`
	YeastPercent      float64 `json:"yeastPercent"`
	DefaultBallWeight int     `json:"defaultBallWeight"`
	FermentHours      int     `json:"fermentHours"`
	OvenCelsius       int     `json:"ovenCelsius"`
}

// ListStylesResponse is the full specs card catalog.
type ListStylesResponse struct {
	Body struct {
		Styles []StyleBody `json:"styles"`
	}
}

// GetStyleRequest fetches one style by id.
type GetStyleRequest struct {
	Style string `doc:"Style id" example:"neapolitan" path:"style"`
}

// GetStyleResponse is a single specs card.
type GetStyleResponse struct {
	Body StyleBody
}

// SaveRecipeRequest is the request body for saving a shareable recipe.
type SaveRecipeRequest struct {
	Body struct {
		Name       string `doc:"Optional recipe name"                         example:"friday night dough" json:"name,omitempty" maxLength:"80"`
		Style      string `doc:"Pizza style"                                  enum:"neapolitan,new_york,detroit,sicilian" example:"neapolitan" json:"style"`
		Pizzas     int    `doc:"Number of dough balls"                        example:"4" json:"pizzas" maximum:"100" minimum:"1"`
		BallWeight int    `doc:"Weight per dough ball in grams (0 = default)" example:"250" json:"ballWeight,omitempty"`
		Hydration  int    `doc:"Hydration percent override (0 = default)"     example:"65" json:"hydration,omitempty"`
	}
}

// SaveRecipeResponse is the saved recipe with its share code.
type SaveRecipeResponse struct {
	Headers struct {
		Location string `doc:"The recipe location" header:"Location"`
	}
	Body struct {
		Code     string `doc:"Share code"          example:"abc12345" json:"code"`
		ShareURL string `doc:"The full shareable URL" json:"shareUrl"`
	}
}

// GetRecipeRequest fetches a saved recipe by share code.
type GetRecipeRequest struct {
	Code string `doc:"Recipe share code" example:"abc12345" path:"code"`
}

// GetRecipeResponse is a saved recipe together with its calculated formula.
type GetRecipeResponse struct {
	Body struct {
		Code        string          `json:"code"`
		Name        string          `json:"name,omitempty"`
		Style       string          `json:"style"`
		Pizzas      int             `json:"pizzas"`
		BallWeight  int             `json:"ballWeight"`
		Hydration   int             `json:"hydration"`
		Ingredients IngredientsBody `json:"ingredients"`
	}
}

// GetLimitsResponse reports how many calculator calls the caller has left.
type GetLimitsResponse struct {
	Body struct {
		RemainingMinute int `doc:"Calls left in the current minute" json:"remainingMinute"`
		RemainingDay    int `doc:"Calls left in the current day"    json:"remainingDay"`
	}
}
