package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mfreed/larder/internal/domain"
	"github.com/mfreed/larder/internal/tui/styles"
)

// Layout constants
const (
	borderHeight         = 2
	scrollIndicatorLines = 2
)

// ItemList is a scrollable list of library items with an optional
// inline fuzzy filter. Rows are keyed by (variant, id): a saved food
// and a recipe may carry the same ID.
type ItemList struct {
	items []domain.LibraryItem

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title        string
	showCalories bool
	loading      bool

	// Inline filter state
	filterActive bool
	filterInput  textinput.Model
	filteredIdx  []int // indices into items
}

// NewItemList creates an empty list.
func NewItemList(title string, showCalories bool) *ItemList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "f "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ItemList{
		title:        title,
		showCalories: showCalories,
		filterInput:  ti,
	}
}

// SetItems replaces the rows, resetting cursor and inline filter.
func (l *ItemList) SetItems(items []domain.LibraryItem) {
	l.items = items
	l.loading = false
	if l.cursor >= len(items) {
		l.cursor = 0
		l.offset = 0
	}
	l.reapplyFilter()
}

// SetTitle updates the header line.
func (l *ItemList) SetTitle(title string) { l.title = title }

// SetLoading toggles the loading placeholder.
func (l *ItemList) SetLoading(loading bool) { l.loading = loading }

// SetFocused toggles focus highlighting.
func (l *ItemList) SetFocused(focused bool) { l.focused = focused }

// SetSize updates dimensions.
func (l *ItemList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// ItemCount returns the number of visible rows.
func (l *ItemList) ItemCount() int {
	if l.filteredIdx != nil {
		return len(l.filteredIdx)
	}
	return len(l.items)
}

// SelectedItem returns the item under the cursor, or nil.
func (l *ItemList) SelectedItem() domain.LibraryItem {
	count := l.ItemCount()
	if count == 0 || l.cursor >= count {
		return nil
	}
	return l.items[l.mapIndex(l.cursor)]
}

// SelectByKey moves the cursor to the item with the given
// (variant, id) key. Returns false when the item is not visible.
func (l *ItemList) SelectByKey(key string) bool {
	for i := 0; i < l.ItemCount(); i++ {
		if domain.ItemKey(l.items[l.mapIndex(i)]) == key {
			l.cursor = i
			l.ensureVisible()
			return true
		}
	}
	return false
}

// IsFilterTyping reports whether keystrokes should go to the filter.
func (l *ItemList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// IsFiltering reports whether an inline filter is applied.
func (l *ItemList) IsFiltering() bool { return l.filterActive }

// StartFilter activates the inline filter input.
func (l *ItemList) StartFilter() {
	l.filterActive = true
	l.filterInput.Focus()
	l.recalcMaxVisible()
}

// ClearFilter deactivates the filter and shows all rows.
func (l *ItemList) ClearFilter() {
	l.filterActive = false
	l.filteredIdx = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
}

// Update handles navigation and filter keystrokes.
func (l *ItemList) Update(msg tea.Msg) tea.Cmd {
	if l.IsFilterTyping() {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc":
				l.ClearFilter()
				return nil
			case "enter":
				l.filterInput.Blur()
				return nil
			case "backspace":
				if l.filterInput.Value() == "" {
					l.ClearFilter()
					return nil
				}
			}
		}
		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return cmd
	}

	count := l.ItemCount()
	if count == 0 {
		return nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "j", "down":
			if l.cursor < count-1 {
				l.cursor++
				l.ensureVisible()
			}
		case "k", "up":
			if l.cursor > 0 {
				l.cursor--
				l.ensureVisible()
			}
		case "g", "home":
			l.cursor = 0
			l.offset = 0
		case "G", "end":
			l.cursor = count - 1
			l.ensureVisible()
		case "ctrl+d":
			l.cursor += l.maxVisible / 2
			if l.cursor >= count {
				l.cursor = count - 1
			}
			l.ensureVisible()
		case "ctrl+u":
			l.cursor -= l.maxVisible / 2
			if l.cursor < 0 {
				l.cursor = 0
			}
			l.ensureVisible()
		}
	}
	return nil
}

// View renders the list.
func (l *ItemList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}

	content := l.renderContent()

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(l.width - frameW).
		Height(l.height - frameH).
		Render(content)
}

// Internal methods

func (l *ItemList) mapIndex(visible int) int {
	if l.filteredIdx != nil {
		return l.filteredIdx[visible]
	}
	return visible
}

func (l *ItemList) recalcMaxVisible() {
	interior := l.height - borderHeight
	l.maxVisible = interior - scrollIndicatorLines - 1 // -1 for title
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *ItemList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

func (l *ItemList) reapplyFilter() {
	if l.filterActive && l.filterInput.Value() != "" {
		l.applyFilter()
	} else {
		l.filteredIdx = nil
	}
}

func (l *ItemList) applyFilter() {
	query := l.filterInput.Value()
	if query == "" {
		l.filteredIdx = nil
		l.cursor = 0
		l.offset = 0
		return
	}

	names := make([]string, len(l.items))
	for i, it := range l.items {
		names[i] = strings.ToLower(it.DisplayName())
	}

	matches := fuzzy.Find(strings.ToLower(query), names)
	l.filteredIdx = make([]int, len(matches))
	for i, m := range matches {
		l.filteredIdx[i] = m.Index
	}
	l.cursor = 0
	l.offset = 0
}

func (l *ItemList) renderContent() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(l.title))
	b.WriteString("\n")

	if l.filterActive {
		b.WriteString(l.filterInput.View())
		b.WriteString("\n")
	}

	if l.loading {
		b.WriteString(styles.DimStyle.Render("loading..."))
		return b.String()
	}

	count := l.ItemCount()
	if count == 0 {
		b.WriteString(styles.DimStyle.Render("nothing here"))
		return b.String()
	}

	// Scroll-up indicator
	if l.offset > 0 {
		b.WriteString(styles.DimStyle.Render("↑ more"))
	}
	b.WriteString("\n")

	end := l.offset + l.maxVisible
	if end > count {
		end = count
	}
	for i := l.offset; i < end; i++ {
		b.WriteString(l.renderRow(i, i == l.cursor))
		b.WriteString("\n")
	}

	// Scroll-down indicator
	if end < count {
		b.WriteString(styles.DimStyle.Render("↓ more"))
	}

	return b.String()
}

func (l *ItemList) renderRow(visible int, selected bool) string {
	it := l.items[l.mapIndex(visible)]

	badge := styles.FoodBadgeStyle.Render(styles.FoodBadge)
	if it.Variant() == domain.VariantComposed {
		badge = styles.RecipeBadgeStyle.Render(styles.RecipeBadge)
	}

	name := it.DisplayName()
	detail := l.rowDetail(it)

	inner := l.width - 6 // borders, badge, spacing
	if inner < 10 {
		inner = 10
	}
	nameWidth := inner - len([]rune(detail))
	if nameWidth < 8 {
		nameWidth = 8
	}

	line := fmt.Sprintf("%s %s%s", badge, styles.Pad(name, nameWidth), detail)

	if selected && l.focused {
		return styles.HighlightStyle.Render(styles.Pad(name, nameWidth) + detail)
	}
	if selected {
		return styles.AccentStyle.Render(line)
	}
	return line
}

func (l *ItemList) rowDetail(it domain.LibraryItem) string {
	var parts []string
	if l.showCalories {
		if cal, ok := it.Calories(); ok {
			parts = append(parts, fmt.Sprintf("%d kcal", cal))
		} else {
			parts = append(parts, "– kcal")
		}
	}
	if n := it.UsageCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("×%d", n))
	}
	return strings.Join(parts, "  ")
}
