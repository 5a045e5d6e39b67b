package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Leaf       = lipgloss.Color("#34D399")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Amber      = lipgloss.Color("#F59E0B")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Leaf)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Leaf)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Leaf).
			Padding(0, 1)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			Padding(0, 1)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Leaf)

	FilterStyle = lipgloss.NewStyle().
			Foreground(White)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateLight).
			Bold(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Padding(0, 1)
)

// Variant badges shown next to item names
const (
	FoodBadge   = "●"
	RecipeBadge = "◆"
)

var (
	FoodBadgeStyle   = lipgloss.NewStyle().Foreground(Green)
	RecipeBadgeStyle = lipgloss.NewStyle().Foreground(Amber)
)

// Pad pads or truncates s to exactly width characters
func Pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	for len(runes) < width {
		runes = append(runes, ' ')
	}
	return string(runes)
}
