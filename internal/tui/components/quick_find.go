package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfreed/larder/internal/domain"
	"github.com/mfreed/larder/internal/search"
	"github.com/mfreed/larder/internal/tui/styles"
)

// QuickFind is the typo-tolerant jump-to-item modal.
type QuickFind struct {
	input     textinput.Model
	results   []search.Result
	cursor    int
	visible   bool
	width     int
	height    int
	prevQuery string
}

// NewQuickFind creates the quick-find component.
func NewQuickFind() QuickFind {
	ti := textinput.New()
	ti.Placeholder = "Jump to..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "» "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return QuickFind{input: ti}
}

// Show makes quick-find visible with a cleared query.
func (q *QuickFind) Show() {
	q.visible = true
	q.input.Focus()
	q.input.SetValue("")
	q.results = nil
	q.cursor = 0
	q.prevQuery = ""
}

// Hide dismisses quick-find.
func (q *QuickFind) Hide() {
	q.visible = false
	q.input.Blur()
}

// IsVisible returns whether quick-find is shown.
func (q QuickFind) IsVisible() bool {
	return q.visible
}

// SetResults replaces the ranked hits.
func (q *QuickFind) SetResults(results []search.Result) {
	q.results = results
	q.cursor = 0
}

// SetSize updates the component dimensions.
func (q *QuickFind) SetSize(width, height int) {
	q.width = width
	q.height = height
	q.input.Width = width - 10
}

// Query returns the current query text.
func (q QuickFind) Query() string {
	return q.input.Value()
}

// QueryChanged reports whether the query changed since the last check.
func (q *QuickFind) QueryChanged() bool {
	current := q.input.Value()
	if current != q.prevQuery {
		q.prevQuery = current
		return true
	}
	return false
}

// Selected returns the highlighted hit, or nil.
func (q QuickFind) Selected() domain.LibraryItem {
	if len(q.results) == 0 || q.cursor >= len(q.results) {
		return nil
	}
	return q.results[q.cursor].Item
}

// Init starts the input cursor blinking.
func (q QuickFind) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages, returns (component, cmd, selected).
func (q QuickFind) Update(msg tea.Msg) (QuickFind, tea.Cmd, bool) {
	if !q.visible {
		return q, nil, false
	}

	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			q.Hide()
			return q, nil, false
		case "enter":
			if len(q.results) > 0 {
				return q, nil, true
			}
			return q, nil, false
		case "down", "ctrl+n":
			if q.cursor < len(q.results)-1 {
				q.cursor++
			}
			return q, nil, false
		case "up", "ctrl+p":
			if q.cursor > 0 {
				q.cursor--
			}
			return q, nil, false
		}
	}

	q.input, cmd = q.input.Update(msg)
	return q, cmd, false
}

// View renders the quick-find modal centered over the app.
func (q QuickFind) View() string {
	if !q.visible {
		return ""
	}

	modalWidth := q.width * 2 / 3
	if modalWidth < 40 {
		modalWidth = 40
	}
	if modalWidth > 72 {
		modalWidth = 72
	}
	const maxResults = 10

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Quick Find"))
	b.WriteString("\n\n")
	b.WriteString(q.input.View())
	b.WriteString("\n\n")

	if len(q.results) == 0 {
		if q.input.Value() != "" {
			b.WriteString(styles.DimStyle.Render("no matches"))
		} else {
			b.WriteString(styles.DimStyle.Render("type a name, typos welcome"))
		}
	} else {
		end := len(q.results)
		if end > maxResults {
			end = maxResults
		}
		for i := 0; i < end; i++ {
			b.WriteString(q.renderHit(i, i == q.cursor))
			b.WriteString("\n")
		}
		if len(q.results) > maxResults {
			b.WriteString(styles.DimStyle.Render(fmt.Sprintf("… %d more", len(q.results)-maxResults)))
		}
	}

	content := lipgloss.NewStyle().
		Width(modalWidth - 4).
		Render(b.String())

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Leaf).
		Background(styles.SlateDark).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(q.width, q.height, lipgloss.Center, lipgloss.Center, modal)
}

func (q QuickFind) renderHit(i int, selected bool) string {
	hit := q.results[i]

	badge := styles.FoodBadgeStyle.Render(styles.FoodBadge)
	if hit.Item.Variant() == domain.VariantComposed {
		badge = styles.RecipeBadgeStyle.Render(styles.RecipeBadge)
	}

	line := fmt.Sprintf("%s %s", badge, hit.Item.DisplayName())
	if sub := hit.Item.Subtitle(); sub != "" {
		line += styles.DimStyle.Render("  " + sub)
	}

	if selected {
		return styles.AccentStyle.Render("> ") + line
	}
	return "  " + line
}
