package library

import (
	"sort"
	"strings"

	"github.com/mfreed/larder/internal/domain"
)

// SortMode selects the total ordering applied to a library view.
type SortMode int

const (
	SortByUsage SortMode = iota // most logged first
	SortByName                  // A-Z, case-insensitive
	SortByRecency               // newest first
)

// String returns the display name for the sort mode.
func (m SortMode) String() string {
	switch m {
	case SortByUsage:
		return "Most Used"
	case SortByName:
		return "Name"
	case SortByRecency:
		return "Recently Added"
	default:
		return "Unknown"
	}
}

// SortModes returns all selectable sort modes in menu order.
func SortModes() []SortMode {
	return []SortMode{SortByUsage, SortByName, SortByRecency}
}

// SortModeFromString maps a config value to a sort mode. Unknown
// values fall back to usage.
func SortModeFromString(s string) SortMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return SortByName
	case "recency", "recent":
		return SortByRecency
	default:
		return SortByUsage
	}
}

// ViewState holds the two raw source collections plus the mutable view
// parameters. Derived views (AllItems, SavedOnly, ComposedOnly) are
// pure functions of this state and are recomputed on every read; the
// owning Service replaces the collections wholesale, never in place.
type ViewState struct {
	SavedFoods []*domain.SavedFood
	Recipes    []*domain.Recipe
	Sort       SortMode
	Query      string
	Category   string // empty means no category filter
}

// Merge projects both source collections into one polymorphic sequence.
// Relative order is unspecified here; FilterAndSort fixes the order.
// The inputs are never mutated.
func Merge(saved []*domain.SavedFood, recipes []*domain.Recipe) []domain.LibraryItem {
	items := make([]domain.LibraryItem, 0, len(saved)+len(recipes))
	for _, f := range saved {
		items = append(items, domain.SavedItem{Food: f})
	}
	for _, r := range recipes {
		items = append(items, domain.ComposedItem{Recipe: r})
	}
	return items
}

// FilterAndSort returns a new sequence containing the items whose name
// contains query (case-insensitive substring; empty query keeps all),
// ordered by mode. The sort is stable: items that compare equal keep
// their input order. The input slice is never mutated.
func FilterAndSort(items []domain.LibraryItem, query string, mode SortMode) []domain.LibraryItem {
	out := filterByName(items, query)
	sortItems(out, mode)
	return out
}

func filterByName(items []domain.LibraryItem, query string) []domain.LibraryItem {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.LibraryItem, 0, len(items))
	for _, it := range items {
		if query == "" || strings.Contains(strings.ToLower(it.DisplayName()), query) {
			out = append(out, it)
		}
	}
	return out
}

func sortItems(items []domain.LibraryItem, mode SortMode) {
	switch mode {
	case SortByName:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].DisplayName()) < strings.ToLower(items[j].DisplayName())
		})
	case SortByUsage:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].UsageCount() > items[j].UsageCount()
		})
	case SortByRecency:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt().After(items[j].CreatedAt())
		})
	}
}

func filterByCategory(items []domain.LibraryItem, category string) []domain.LibraryItem {
	if category == "" {
		return items
	}
	out := make([]domain.LibraryItem, 0, len(items))
	for _, it := range items {
		if strings.EqualFold(it.Category(), category) {
			out = append(out, it)
		}
	}
	return out
}

// AllItems returns the merged library filtered and ordered per state.
func AllItems(s ViewState) []domain.LibraryItem {
	items := filterByCategory(Merge(s.SavedFoods, s.Recipes), s.Category)
	return FilterAndSort(items, s.Query, s.Sort)
}

// SavedOnly returns the saved-food subset filtered and ordered per state.
func SavedOnly(s ViewState) []domain.LibraryItem {
	items := filterByCategory(Merge(s.SavedFoods, nil), s.Category)
	return FilterAndSort(items, s.Query, s.Sort)
}

// ComposedOnly returns the recipe subset filtered and ordered per state.
func ComposedOnly(s ViewState) []domain.LibraryItem {
	items := filterByCategory(Merge(nil, s.Recipes), s.Category)
	return FilterAndSort(items, s.Query, s.Sort)
}
