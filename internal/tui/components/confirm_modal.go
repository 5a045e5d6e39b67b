package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mfreed/larder/internal/tui/styles"
)

// ConfirmModal asks a yes/no question before a destructive action.
type ConfirmModal struct {
	visible bool
	title   string
	detail  string
}

// NewConfirmModal creates a hidden confirm modal.
func NewConfirmModal() ConfirmModal {
	return ConfirmModal{}
}

// Show displays the modal with a question and a detail line.
func (m *ConfirmModal) Show(title, detail string) {
	m.visible = true
	m.title = title
	m.detail = detail
}

// Hide dismisses the modal.
func (m *ConfirmModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown.
func (m ConfirmModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, confirmed).
func (m *ConfirmModal) HandleKey(key string) (handled bool, confirmed bool) {
	if !m.visible {
		return false, false
	}

	switch key {
	case "y", "Y", "enter":
		m.visible = false
		return true, true
	case "n", "N", "esc":
		m.visible = false
		return true, false
	}

	return true, false // consume all keys when visible
}

// View renders the confirm modal.
func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 40

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.White).
		Bold(true).
		Width(modalWidth).
		Background(styles.SlateDark)

	detailStyle := lipgloss.NewStyle().
		Foreground(styles.LightGray).
		Width(modalWidth).
		Background(styles.SlateDark)

	hintStyle := lipgloss.NewStyle().
		Foreground(styles.DimGray).
		Width(modalWidth).
		Background(styles.SlateDark)

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		detailStyle.Render(m.detail),
		hintStyle.Render("y confirm · n cancel"),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Red).
		Background(styles.SlateDark).
		Padding(1, 2).
		Render(content)
}
