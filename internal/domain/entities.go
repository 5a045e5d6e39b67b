package domain

import (
	"fmt"
	"time"
)

// SavedFood is a single food record the owner saved for quick re-logging.
type SavedFood struct {
	ID            string     // Server-assigned unique identifier
	OwnerID       string     // Owning user
	Name          string     // Display name
	Brand         string     // Brand or vendor, empty for generic foods
	Category      string     // e.g. "breakfast", "snack"
	ServingSize   float64    // Amount of one serving
	ServingUnit   string     // "g", "ml", "piece"
	TotalCalories *int       // nil when nutrition is unknown (0 is a real value)
	TotalProteinG *float64   // nil when unknown
	TotalCarbsG   *float64   // nil when unknown
	TotalFatG     *float64   // nil when unknown
	TimesLogged   int        // How often the owner logged this food
	CreatedAt     time.Time  // When the record was saved
	LastLoggedAt  *time.Time // nil when never logged
}

// FormattedServing returns the serving in a human-readable format.
func (f SavedFood) FormattedServing() string {
	if f.ServingSize <= 0 {
		return ""
	}
	if f.ServingSize == float64(int(f.ServingSize)) {
		return fmt.Sprintf("%d %s", int(f.ServingSize), f.ServingUnit)
	}
	return fmt.Sprintf("%.1f %s", f.ServingSize, f.ServingUnit)
}

// Recipe is a multi-ingredient record with a per-serving nutrition projection.
type Recipe struct {
	ID                 string       // Server-assigned unique identifier
	OwnerID            string       // Owning user
	Name               string       // Display name
	Description        string       // Optional free-form description
	Servings           int          // Yield of the full recipe
	Ingredients        []Ingredient // Component foods with quantities
	CaloriesPerServing *int         // nil when not computed server-side
	ProteinPerServingG *float64     // nil when not computed
	CarbsPerServingG   *float64     // nil when not computed
	FatPerServingG     *float64     // nil when not computed
	Tags               []string     // Free-form tags ("dinner", "meal-prep")
	TimesLogged        int          // How often the owner logged this recipe
	CreatedAt          time.Time    // When the recipe was created
	UpdatedAt          time.Time    // Last server-side modification
}

// Ingredient is one component of a recipe.
type Ingredient struct {
	Name     string
	Quantity float64
	Unit     string
}

// IngredientSummary returns a short ingredient count for display.
func (r Recipe) IngredientSummary() string {
	if len(r.Ingredients) == 1 {
		return "1 ingredient"
	}
	return fmt.Sprintf("%d ingredients", len(r.Ingredients))
}

// HasTag reports whether the recipe carries the given tag.
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NutritionGoals holds the owner's daily targets and tracking toggles.
type NutritionGoals struct {
	OwnerID       string
	DailyCalories int
	DailyProteinG float64
	DailyCarbsG   float64
	DailyFatG     float64
	TrackProtein  bool
	TrackCarbs    bool
	TrackFat      bool
	UpdatedAt     time.Time
}
