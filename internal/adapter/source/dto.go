package source

// Wire shapes for the nutrition API. Optional nutrition values come
// over as JSON null and must stay distinguishable from zero, so they
// are pointers here too.

// foodsResponse is the envelope for GET /v1/users/{owner}/foods
type foodsResponse struct {
	Foods []foodDTO `json:"foods"`
	Total int       `json:"total"`
}

// recipesResponse is the envelope for GET /v1/users/{owner}/recipes
type recipesResponse struct {
	Recipes []recipeDTO `json:"recipes"`
	Total   int         `json:"total"`
}

type foodDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand,omitempty"`
	Category      string   `json:"category,omitempty"`
	ServingSize   float64  `json:"serving_size,omitempty"`
	ServingUnit   string   `json:"serving_unit,omitempty"`
	TotalCalories *int     `json:"total_calories"`
	TotalProteinG *float64 `json:"total_protein_g"`
	TotalCarbsG   *float64 `json:"total_carbs_g"`
	TotalFatG     *float64 `json:"total_fat_g"`
	TimesLogged   int      `json:"times_logged"`
	CreatedAt     int64    `json:"created_at"`
	LastLoggedAt  *int64   `json:"last_logged_at"`
}

type recipeDTO struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Servings           int             `json:"servings"`
	Ingredients        []ingredientDTO `json:"ingredients,omitempty"`
	CaloriesPerServing *int            `json:"calories_per_serving"`
	ProteinPerServingG *float64        `json:"protein_per_serving_g"`
	CarbsPerServingG   *float64        `json:"carbs_per_serving_g"`
	FatPerServingG     *float64        `json:"fat_per_serving_g"`
	Tags               []string        `json:"tags,omitempty"`
	TimesLogged        int             `json:"times_logged"`
	CreatedAt          int64           `json:"created_at"`
	UpdatedAt          int64           `json:"updated_at"`
}

type ingredientDTO struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
}

type goalsDTO struct {
	DailyCalories int     `json:"daily_calories"`
	DailyProteinG float64 `json:"daily_protein_g"`
	DailyCarbsG   float64 `json:"daily_carbs_g"`
	DailyFatG     float64 `json:"daily_fat_g"`
	TrackProtein  bool    `json:"track_protein"`
	TrackCarbs    bool    `json:"track_carbs"`
	TrackFat      bool    `json:"track_fat"`
	UpdatedAt     int64   `json:"updated_at,omitempty"`
}
