package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mfreed/larder/internal/library"
	"github.com/mfreed/larder/internal/tui/styles"
)

// SortModal is a small popup for choosing sort order.
type SortModal struct {
	visible bool
	options []library.SortMode
	cursor  int
	active  library.SortMode
}

// NewSortModal creates a new sort modal.
func NewSortModal() SortModal {
	return SortModal{options: library.SortModes()}
}

// Show displays the modal with the cursor on the active mode.
func (m *SortModal) Show(active library.SortMode) {
	m.visible = true
	m.active = active
	m.cursor = 0
	for i, opt := range m.options {
		if opt == active {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal.
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown.
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// A non-nil selection means the user confirmed a choice.
func (m *SortModal) HandleKey(key string) (handled bool, selection *library.SortMode) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return true, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, nil
	case "enter":
		chosen := m.options[m.cursor]
		m.visible = false
		return true, &chosen
	case "esc", "s":
		m.visible = false
		return true, nil
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal.
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		selected := i == m.cursor
		isActive := opt == m.active

		prefix := "  "
		if isActive {
			prefix = "✓ "
		}
		text := prefix + opt.String()

		if selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(styles.Pad(text, 20)))
		} else if isActive {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.Leaf).
				Render(styles.Pad(text, 20)))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(styles.Pad(text, 20)))
		}
	}

	content := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Leaf).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + content)
}
