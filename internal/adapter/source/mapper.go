package source

import (
	"time"

	"github.com/mfreed/larder/internal/domain"
)

// mapFoods converts wire foods to domain saved foods
func mapFoods(dtos []foodDTO, ownerID string) []*domain.SavedFood {
	foods := make([]*domain.SavedFood, 0, len(dtos))
	for _, d := range dtos {
		foods = append(foods, mapFood(d, ownerID))
	}
	return foods
}

func mapFood(d foodDTO, ownerID string) *domain.SavedFood {
	f := &domain.SavedFood{
		ID:            d.ID,
		OwnerID:       ownerID,
		Name:          d.Name,
		Brand:         d.Brand,
		Category:      d.Category,
		ServingSize:   d.ServingSize,
		ServingUnit:   d.ServingUnit,
		TotalCalories: d.TotalCalories,
		TotalProteinG: d.TotalProteinG,
		TotalCarbsG:   d.TotalCarbsG,
		TotalFatG:     d.TotalFatG,
		TimesLogged:   d.TimesLogged,
		CreatedAt:     time.Unix(d.CreatedAt, 0),
	}
	if d.TimesLogged < 0 {
		f.TimesLogged = 0
	}
	if d.LastLoggedAt != nil {
		t := time.Unix(*d.LastLoggedAt, 0)
		f.LastLoggedAt = &t
	}
	return f
}

// mapRecipes converts wire recipes to domain recipes
func mapRecipes(dtos []recipeDTO, ownerID string) []*domain.Recipe {
	recipes := make([]*domain.Recipe, 0, len(dtos))
	for _, d := range dtos {
		recipes = append(recipes, mapRecipe(d, ownerID))
	}
	return recipes
}

func mapRecipe(d recipeDTO, ownerID string) *domain.Recipe {
	r := &domain.Recipe{
		ID:                 d.ID,
		OwnerID:            ownerID,
		Name:               d.Name,
		Description:        d.Description,
		Servings:           d.Servings,
		CaloriesPerServing: d.CaloriesPerServing,
		ProteinPerServingG: d.ProteinPerServingG,
		CarbsPerServingG:   d.CarbsPerServingG,
		FatPerServingG:     d.FatPerServingG,
		Tags:               d.Tags,
		TimesLogged:        d.TimesLogged,
		CreatedAt:          time.Unix(d.CreatedAt, 0),
		UpdatedAt:          time.Unix(d.UpdatedAt, 0),
	}
	if d.TimesLogged < 0 {
		r.TimesLogged = 0
	}
	for _, ing := range d.Ingredients {
		r.Ingredients = append(r.Ingredients, domain.Ingredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	return r
}

func mapGoals(d goalsDTO, ownerID string) *domain.NutritionGoals {
	return &domain.NutritionGoals{
		OwnerID:       ownerID,
		DailyCalories: d.DailyCalories,
		DailyProteinG: d.DailyProteinG,
		DailyCarbsG:   d.DailyCarbsG,
		DailyFatG:     d.DailyFatG,
		TrackProtein:  d.TrackProtein,
		TrackCarbs:    d.TrackCarbs,
		TrackFat:      d.TrackFat,
		UpdatedAt:     time.Unix(d.UpdatedAt, 0),
	}
}

func goalsToDTO(g domain.NutritionGoals) goalsDTO {
	return goalsDTO{
		DailyCalories: g.DailyCalories,
		DailyProteinG: g.DailyProteinG,
		DailyCarbsG:   g.DailyCarbsG,
		DailyFatG:     g.DailyFatG,
		TrackProtein:  g.TrackProtein,
		TrackCarbs:    g.TrackCarbs,
		TrackFat:      g.TrackFat,
	}
}
