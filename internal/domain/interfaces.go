package domain

import (
	"context"
	"time"
)

// RecipeOrder is a server-side ordering hint for recipe fetches.
// The view layer re-sorts locally regardless; the hint only shapes
// pagination on the wire.
type RecipeOrder string

const (
	RecipeOrderRecent RecipeOrder = "recent"
	RecipeOrderName   RecipeOrder = "name"
)

// LibraryRepository: network operations against the nutrition API.
type LibraryRepository interface {
	FetchSavedFoods(ctx context.Context, ownerID string, limit int) ([]*SavedFood, error)
	FetchRecipes(ctx context.Context, ownerID string, limit int, order RecipeOrder) ([]*Recipe, error)
	DeleteSavedFood(ctx context.Context, ownerID, id string) error
	DeleteRecipe(ctx context.Context, ownerID, id string) error
}

// GoalsRepository: network operations for the nutrition settings.
type GoalsRepository interface {
	FetchGoals(ctx context.Context, ownerID string) (*NutritionGoals, error)
	UpdateGoals(ctx context.Context, ownerID string, goals NutritionGoals) error
}

// Store handles the local cache (BoltDB + memory).
// Reads return instantly and never touch the network.
type Store interface {
	GetSavedFoods(ownerID string) ([]*SavedFood, bool)
	SaveSavedFoods(ownerID string, foods []*SavedFood, fetchedAt int64) error

	GetRecipes(ownerID string) ([]*Recipe, bool)
	SaveRecipes(ownerID string, recipes []*Recipe, fetchedAt int64) error

	GetGoals(ownerID string) (*NutritionGoals, bool)
	SaveGoals(ownerID string, goals *NutritionGoals) error

	// IsFresh reports whether the owner's library was fetched within maxAge
	IsFresh(ownerID string, maxAge time.Duration) bool

	InvalidateOwner(ownerID string)
	InvalidateAll()

	Close() error
}
