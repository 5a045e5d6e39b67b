package domain

import (
	"fmt"
	"time"
)

// ItemVariant distinguishes the two library item sources.
type ItemVariant int

const (
	VariantSaved ItemVariant = iota
	VariantComposed
)

// String returns a human-readable representation of the variant.
func (v ItemVariant) String() string {
	switch v {
	case VariantSaved:
		return "food"
	case VariantComposed:
		return "recipe"
	default:
		return "unknown"
	}
}

// LibraryItem is the polymorphic read-only projection over saved foods
// and recipes. It provides a common API for display, filtering, and
// sorting across both variants.
//
// IDs are only unique within one variant: a saved food and a recipe may
// share an ID. Anything keying items must use ItemKey, not ItemID.
type LibraryItem interface {
	// Variant identifies the underlying source collection
	Variant() ItemVariant

	// ItemID returns the identifier, unique within the variant only
	ItemID() string

	// DisplayName returns the name shown in lists
	DisplayName() string

	// Calories returns the calorie value and whether it is known.
	// Zero calories is a real value, distinct from unknown.
	Calories() (int, bool)

	// Protein returns protein grams and whether it is known
	Protein() (float64, bool)

	// CreatedAt returns when the underlying record was created
	CreatedAt() time.Time

	// UsageCount returns how many times the item was logged (never negative)
	UsageCount() int

	// Category returns the grouping label used by the category filter
	// (the food category for saved foods, the first tag for recipes)
	Category() string

	// Subtitle returns secondary info for display
	Subtitle() string
}

// ItemKey returns the (variant, id) key that is unique across the
// merged library.
func ItemKey(it LibraryItem) string {
	return fmt.Sprintf("%s:%s", it.Variant(), it.ItemID())
}

// SavedItem projects a SavedFood into the library.
type SavedItem struct {
	Food *SavedFood
}

func (i SavedItem) Variant() ItemVariant  { return VariantSaved }
func (i SavedItem) ItemID() string        { return i.Food.ID }
func (i SavedItem) DisplayName() string   { return i.Food.Name }
func (i SavedItem) CreatedAt() time.Time  { return i.Food.CreatedAt }
func (i SavedItem) Category() string      { return i.Food.Category }

func (i SavedItem) Calories() (int, bool) {
	if i.Food.TotalCalories == nil {
		return 0, false
	}
	return *i.Food.TotalCalories, true
}

func (i SavedItem) Protein() (float64, bool) {
	if i.Food.TotalProteinG == nil {
		return 0, false
	}
	return *i.Food.TotalProteinG, true
}

func (i SavedItem) UsageCount() int {
	if i.Food.TimesLogged < 0 {
		return 0
	}
	return i.Food.TimesLogged
}

func (i SavedItem) Subtitle() string {
	if i.Food.Brand != "" {
		return i.Food.Brand
	}
	return i.Food.FormattedServing()
}

// ComposedItem projects a Recipe into the library.
type ComposedItem struct {
	Recipe *Recipe
}

func (i ComposedItem) Variant() ItemVariant { return VariantComposed }
func (i ComposedItem) ItemID() string       { return i.Recipe.ID }
func (i ComposedItem) DisplayName() string  { return i.Recipe.Name }
func (i ComposedItem) CreatedAt() time.Time { return i.Recipe.CreatedAt }

func (i ComposedItem) Calories() (int, bool) {
	if i.Recipe.CaloriesPerServing == nil {
		return 0, false
	}
	return *i.Recipe.CaloriesPerServing, true
}

func (i ComposedItem) Protein() (float64, bool) {
	if i.Recipe.ProteinPerServingG == nil {
		return 0, false
	}
	return *i.Recipe.ProteinPerServingG, true
}

func (i ComposedItem) UsageCount() int {
	if i.Recipe.TimesLogged < 0 {
		return 0
	}
	return i.Recipe.TimesLogged
}

func (i ComposedItem) Category() string {
	if len(i.Recipe.Tags) > 0 {
		return i.Recipe.Tags[0]
	}
	return ""
}

func (i ComposedItem) Subtitle() string {
	return i.Recipe.IngredientSummary()
}
