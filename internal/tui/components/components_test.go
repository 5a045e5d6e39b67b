package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreed/larder/internal/domain"
	"github.com/mfreed/larder/internal/library"
)

func listItems(names ...string) []domain.LibraryItem {
	items := make([]domain.LibraryItem, 0, len(names))
	for i, name := range names {
		items = append(items, domain.SavedItem{Food: &domain.SavedFood{
			ID:        name,
			Name:      name,
			CreatedAt: time.Now(),
		}})
		if i%2 == 1 {
			// Replace every other entry with a recipe so both
			// variants show up in list tests.
			items[i] = domain.ComposedItem{Recipe: &domain.Recipe{
				ID:        name,
				Name:      name,
				CreatedAt: time.Now(),
			}}
		}
	}
	return items
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestItemListNavigationStopsAtBounds(t *testing.T) {
	l := NewItemList("All", false)
	l.SetSize(60, 20)
	l.SetItems(listItems("Apple", "Banana", "Cherry"))

	assert.Equal(t, "Apple", l.SelectedItem().DisplayName())

	l.Update(keyMsg("k")) // already at top
	assert.Equal(t, "Apple", l.SelectedItem().DisplayName())

	l.Update(keyMsg("j"))
	l.Update(keyMsg("j"))
	l.Update(keyMsg("j")) // past the end
	assert.Equal(t, "Cherry", l.SelectedItem().DisplayName())

	l.Update(keyMsg("g"))
	assert.Equal(t, "Apple", l.SelectedItem().DisplayName())

	l.Update(keyMsg("G"))
	assert.Equal(t, "Cherry", l.SelectedItem().DisplayName())
}

func TestItemListSetItemsResetsCursorWhenOutOfRange(t *testing.T) {
	l := NewItemList("All", false)
	l.SetSize(60, 20)
	l.SetItems(listItems("Apple", "Banana", "Cherry"))
	l.Update(keyMsg("G"))

	l.SetItems(listItems("Apple"))
	require.NotNil(t, l.SelectedItem())
	assert.Equal(t, "Apple", l.SelectedItem().DisplayName())
}

func TestItemListInlineFilter(t *testing.T) {
	l := NewItemList("All", false)
	l.SetSize(60, 20)
	l.SetItems(listItems("Greek Yogurt", "Banana", "Yogurt Parfait"))

	l.StartFilter()
	require.True(t, l.IsFilterTyping())

	for _, r := range "yog" {
		l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, 2, l.ItemCount())

	l.ClearFilter()
	assert.Equal(t, 3, l.ItemCount())
	assert.False(t, l.IsFiltering())
}

func TestItemListSelectByKeyDistinguishesVariants(t *testing.T) {
	shared := "f1"
	food := domain.SavedItem{Food: &domain.SavedFood{ID: shared, Name: "Chili"}}
	recipe := domain.ComposedItem{Recipe: &domain.Recipe{ID: shared, Name: "Chili"}}

	l := NewItemList("All", false)
	l.SetSize(60, 20)
	l.SetItems([]domain.LibraryItem{food, recipe})

	require.True(t, l.SelectByKey(domain.ItemKey(recipe)))
	assert.Equal(t, domain.VariantComposed, l.SelectedItem().Variant())

	require.True(t, l.SelectByKey(domain.ItemKey(food)))
	assert.Equal(t, domain.VariantSaved, l.SelectedItem().Variant())

	assert.False(t, l.SelectByKey("recipe:missing"))
}

func TestSortModalSelection(t *testing.T) {
	m := NewSortModal()
	m.Show(library.SortByUsage)
	require.True(t, m.IsVisible())

	handled, sel := m.HandleKey("j")
	assert.True(t, handled)
	assert.Nil(t, sel)

	handled, sel = m.HandleKey("enter")
	assert.True(t, handled)
	require.NotNil(t, sel)
	assert.Equal(t, library.SortByName, *sel)
	assert.False(t, m.IsVisible())
}

func TestSortModalCursorStartsOnActiveMode(t *testing.T) {
	m := NewSortModal()
	m.Show(library.SortByRecency)

	_, sel := m.HandleKey("enter")
	require.NotNil(t, sel)
	assert.Equal(t, library.SortByRecency, *sel)
}

func TestSortModalEscapeDismissesWithoutSelection(t *testing.T) {
	m := NewSortModal()
	m.Show(library.SortByUsage)

	handled, sel := m.HandleKey("esc")
	assert.True(t, handled)
	assert.Nil(t, sel)
	assert.False(t, m.IsVisible())
}

func TestSortModalConsumesKeysWhileVisible(t *testing.T) {
	m := NewSortModal()
	m.Show(library.SortByUsage)

	handled, _ := m.HandleKey("x")
	assert.True(t, handled)

	m.Hide()
	handled, _ = m.HandleKey("j")
	assert.False(t, handled)
}

func TestConfirmModalYesAndNo(t *testing.T) {
	m := NewConfirmModal()

	m.Show("Delete Chili?", "recipe")
	handled, confirmed := m.HandleKey("y")
	assert.True(t, handled)
	assert.True(t, confirmed)
	assert.False(t, m.IsVisible())

	m.Show("Delete Chili?", "recipe")
	handled, confirmed = m.HandleKey("n")
	assert.True(t, handled)
	assert.False(t, confirmed)
	assert.False(t, m.IsVisible())
}

func TestQuickFindQueryChanged(t *testing.T) {
	q := NewQuickFind()
	q.Show()

	assert.False(t, q.QueryChanged())

	q, _, _ = q.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.True(t, q.QueryChanged())
	assert.False(t, q.QueryChanged())
}
