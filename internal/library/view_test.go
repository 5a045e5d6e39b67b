package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreed/larder/internal/domain"
)

func food(id, name string, timesLogged int, createdAt time.Time) *domain.SavedFood {
	return &domain.SavedFood{
		ID:          id,
		Name:        name,
		TimesLogged: timesLogged,
		CreatedAt:   createdAt,
	}
}

func recipe(id, name string, timesLogged int, createdAt time.Time) *domain.Recipe {
	return &domain.Recipe{
		ID:          id,
		Name:        name,
		TimesLogged: timesLogged,
		CreatedAt:   createdAt,
	}
}

func names(items []domain.LibraryItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.DisplayName()
	}
	return out
}

func TestMergeEmptyInputs(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
	assert.Empty(t, Merge([]*domain.SavedFood{}, []*domain.Recipe{}))
}

func TestMergeCombinesBothVariants(t *testing.T) {
	now := time.Now()
	saved := []*domain.SavedFood{food("a", "Oatmeal", 3, now)}
	recipes := []*domain.Recipe{recipe("b", "Chili", 1, now)}

	items := Merge(saved, recipes)
	require.Len(t, items, 2)
	assert.Equal(t, domain.VariantSaved, items[0].Variant())
	assert.Equal(t, domain.VariantComposed, items[1].Variant())

	// Inputs stay untouched
	assert.Len(t, saved, 1)
	assert.Len(t, recipes, 1)
}

func TestMergeAllowsEqualIDsAcrossVariants(t *testing.T) {
	now := time.Now()
	items := Merge(
		[]*domain.SavedFood{food("x1", "Yogurt", 0, now)},
		[]*domain.Recipe{recipe("x1", "Yogurt Bowl", 0, now)},
	)
	require.Len(t, items, 2)
	assert.Equal(t, items[0].ItemID(), items[1].ItemID())
	assert.NotEqual(t, domain.ItemKey(items[0]), domain.ItemKey(items[1]))
}

func TestFilterNoMatchReturnsEmpty(t *testing.T) {
	now := time.Now()
	items := Merge([]*domain.SavedFood{food("a", "Banana", 0, now)}, nil)

	got := FilterAndSort(items, "zzz-no-such-item", SortByName)
	assert.Empty(t, got)
}

func TestFilterEmptyQueryKeepsEverything(t *testing.T) {
	now := time.Now()
	items := Merge(
		[]*domain.SavedFood{food("a", "Banana", 2, now), food("b", "Apple", 1, now)},
		[]*domain.Recipe{recipe("c", "Curry", 5, now)},
	)

	got := FilterAndSort(items, "", SortByName)
	assert.Len(t, got, len(items))
	assert.ElementsMatch(t, names(items), names(got))
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	now := time.Now()
	items := Merge(
		[]*domain.SavedFood{food("a", "Greek Yogurt", 0, now)},
		[]*domain.Recipe{recipe("b", "Yogurt Parfait", 0, now)},
	)

	got := FilterAndSort(items, "YOGURT", SortByName)
	require.Len(t, got, 2)

	got = FilterAndSort(items, "parf", SortByName)
	require.Len(t, got, 1)
	assert.Equal(t, "Yogurt Parfait", got[0].DisplayName())
}

func TestFilterAndSortDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	items := Merge(
		[]*domain.SavedFood{food("a", "Banana", 0, now), food("b", "Apple", 0, now)},
		nil,
	)
	before := names(items)

	_ = FilterAndSort(items, "", SortByName)
	assert.Equal(t, before, names(items))
}

func TestSortByNameAscendingIdempotent(t *testing.T) {
	now := time.Now()
	items := Merge(
		[]*domain.SavedFood{
			food("a", "peanut butter", 0, now),
			food("b", "Almonds", 0, now),
			food("c", "Cashews", 0, now),
		},
		nil,
	)

	once := FilterAndSort(items, "", SortByName)
	assert.Equal(t, []string{"Almonds", "Cashews", "peanut butter"}, names(once))

	twice := FilterAndSort(once, "", SortByName)
	assert.Equal(t, names(once), names(twice))
}

func TestSortByUsageDescendingZeroLast(t *testing.T) {
	now := time.Now()
	items := Merge(
		[]*domain.SavedFood{
			food("a", "Never Logged", 0, now),
			food("b", "Daily", 30, now),
			food("c", "Also Never", 0, now),
			food("d", "Weekly", 4, now),
		},
		nil,
	)

	got := FilterAndSort(items, "", SortByUsage)
	require.Len(t, got, 4)

	seenZero := false
	for _, it := range got {
		if it.UsageCount() == 0 {
			seenZero = true
		} else {
			assert.False(t, seenZero, "positive-usage item after a zero-usage item")
		}
	}
}

func TestSortByUsageTiesKeepInsertionOrder(t *testing.T) {
	now := time.Now()
	items := Merge(
		[]*domain.SavedFood{
			food("a", "First", 3, now),
			food("b", "Second", 3, now),
			food("c", "Third", 3, now),
		},
		nil,
	)

	got := FilterAndSort(items, "", SortByUsage)
	assert.Equal(t, []string{"First", "Second", "Third"}, names(got))
}

func TestSortByRecencyNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	items := Merge(
		[]*domain.SavedFood{
			food("a", "Old", 0, base.Add(-48*time.Hour)),
			food("b", "New", 0, base),
		},
		[]*domain.Recipe{recipe("c", "Middle", 0, base.Add(-24*time.Hour))},
	)

	got := FilterAndSort(items, "", SortByRecency)
	assert.Equal(t, []string{"New", "Middle", "Old"}, names(got))
}

func TestAllItemsByNamePutsAppleBeforeBanana(t *testing.T) {
	now := time.Now()
	state := ViewState{
		SavedFoods: []*domain.SavedFood{food("a", "Banana Smoothie", 5, now)},
		Recipes:    []*domain.Recipe{recipe("b", "Apple Pie", 2, now)},
		Sort:       SortByName,
	}

	got := AllItems(state)
	require.Len(t, got, 2)
	assert.Equal(t, "Apple Pie", got[0].DisplayName())
	assert.Equal(t, "b", got[0].ItemID())
	assert.Equal(t, "Banana Smoothie", got[1].DisplayName())
	assert.Equal(t, "a", got[1].ItemID())
}

func TestAllItemsByUsagePutsSmoothieFirst(t *testing.T) {
	now := time.Now()
	state := ViewState{
		SavedFoods: []*domain.SavedFood{food("a", "Banana Smoothie", 5, now)},
		Recipes:    []*domain.Recipe{recipe("b", "Apple Pie", 2, now)},
		Sort:       SortByUsage,
	}

	got := AllItems(state)
	require.Len(t, got, 2)
	assert.Equal(t, "Banana Smoothie", got[0].DisplayName())
	assert.Equal(t, "Apple Pie", got[1].DisplayName())
}

func TestQueryRestrictsDerivedViews(t *testing.T) {
	now := time.Now()
	state := ViewState{
		SavedFoods: []*domain.SavedFood{food("a", "Banana Smoothie", 5, now)},
		Recipes:    []*domain.Recipe{recipe("b", "Apple Pie", 2, now)},
		Sort:       SortByName,
		Query:      "pie",
	}

	all := AllItems(state)
	require.Len(t, all, 1)
	assert.Equal(t, "Apple Pie", all[0].DisplayName())

	assert.Empty(t, SavedOnly(state))

	composed := ComposedOnly(state)
	require.Len(t, composed, 1)
	assert.Equal(t, "b", composed[0].ItemID())
}

func TestCategoryFilter(t *testing.T) {
	now := time.Now()
	breakfast := food("a", "Oatmeal", 0, now)
	breakfast.Category = "breakfast"
	snack := food("b", "Trail Mix", 0, now)
	snack.Category = "snack"
	dinner := recipe("c", "Lasagna", 0, now)
	dinner.Tags = []string{"dinner"}

	state := ViewState{
		SavedFoods: []*domain.SavedFood{breakfast, snack},
		Recipes:    []*domain.Recipe{dinner},
		Sort:       SortByName,
		Category:   "breakfast",
	}

	got := AllItems(state)
	require.Len(t, got, 1)
	assert.Equal(t, "Oatmeal", got[0].DisplayName())

	state.Category = ""
	assert.Len(t, AllItems(state), 3)
}

func TestOptionalNutritionIsNotDefaulted(t *testing.T) {
	now := time.Now()
	unknown := food("a", "Mystery Soup", 0, now)
	zero := food("b", "Water", 0, now)
	zeroCal := 0
	zero.TotalCalories = &zeroCal

	items := Merge([]*domain.SavedFood{unknown, zero}, nil)

	_, ok := items[0].Calories()
	assert.False(t, ok, "unknown calories must not read as a value")

	cal, ok := items[1].Calories()
	require.True(t, ok, "zero calories is a real value")
	assert.Equal(t, 0, cal)
}
