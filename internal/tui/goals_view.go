package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mfreed/larder/internal/domain"
	"github.com/mfreed/larder/internal/tui/styles"
)

// Goals form fields, in display order.
const (
	goalFieldCalories = iota
	goalFieldProtein
	goalFieldTrackProtein
	goalFieldCarbs
	goalFieldTrackCarbs
	goalFieldFat
	goalFieldTrackFat
	goalFieldCount
)

// GoalsView is the nutrition targets editor. Edits are local until the
// user saves; the server copy is only replaced once it accepts them.
type GoalsView struct {
	goals   domain.NutritionGoals
	saved   domain.NutritionGoals
	cursor  int
	dirty   bool
	loaded  bool
	width   int
	height  int
}

// NewGoalsView creates an empty goals editor.
func NewGoalsView() GoalsView {
	return GoalsView{}
}

// SetGoals replaces the editor contents, discarding local edits.
func (v *GoalsView) SetGoals(goals domain.NutritionGoals) {
	v.goals = goals
	v.saved = goals
	v.dirty = false
	v.loaded = true
}

// MarkSaved records that the current edits were accepted.
func (v *GoalsView) MarkSaved(goals domain.NutritionGoals) {
	v.goals = goals
	v.saved = goals
	v.dirty = false
}

// Revert drops local edits back to the last accepted copy.
func (v *GoalsView) Revert() {
	v.goals = v.saved
	v.dirty = false
}

// Edited returns the current form contents.
func (v GoalsView) Edited() domain.NutritionGoals {
	return v.goals
}

// IsDirty reports whether there are unsaved edits.
func (v GoalsView) IsDirty() bool {
	return v.dirty
}

// IsLoaded reports whether goals have arrived.
func (v GoalsView) IsLoaded() bool {
	return v.loaded
}

// SetSize updates dimensions.
func (v *GoalsView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// HandleKey processes a key press, returns true when handled.
func (v *GoalsView) HandleKey(key string) bool {
	switch key {
	case "j", "down":
		if v.cursor < goalFieldCount-1 {
			v.cursor++
		}
		return true
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
		return true
	case "l", "right", "+":
		v.adjust(1)
		return true
	case "h", "left", "-":
		v.adjust(-1)
		return true
	case "L":
		v.adjust(10)
		return true
	case "H":
		v.adjust(-10)
		return true
	case " ", "enter":
		v.toggle()
		return true
	}
	return false
}

func (v *GoalsView) adjust(delta int) {
	switch v.cursor {
	case goalFieldCalories:
		v.goals.DailyCalories += delta * 10
		if v.goals.DailyCalories < 0 {
			v.goals.DailyCalories = 0
		}
	case goalFieldProtein:
		v.goals.DailyProteinG = clampGrams(v.goals.DailyProteinG + float64(delta))
	case goalFieldCarbs:
		v.goals.DailyCarbsG = clampGrams(v.goals.DailyCarbsG + float64(delta))
	case goalFieldFat:
		v.goals.DailyFatG = clampGrams(v.goals.DailyFatG + float64(delta))
	default:
		return
	}
	v.dirty = true
}

func (v *GoalsView) toggle() {
	switch v.cursor {
	case goalFieldTrackProtein:
		v.goals.TrackProtein = !v.goals.TrackProtein
	case goalFieldTrackCarbs:
		v.goals.TrackCarbs = !v.goals.TrackCarbs
	case goalFieldTrackFat:
		v.goals.TrackFat = !v.goals.TrackFat
	default:
		return
	}
	v.dirty = true
}

func clampGrams(g float64) float64 {
	if g < 0 {
		return 0
	}
	return g
}

// View renders the goals editor.
func (v GoalsView) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Nutrition Goals"))
	b.WriteString("\n\n")

	if !v.loaded {
		b.WriteString(styles.DimStyle.Render("loading..."))
	} else {
		rows := []struct {
			field int
			label string
			value string
		}{
			{goalFieldCalories, "Daily calories", fmt.Sprintf("%d kcal", v.goals.DailyCalories)},
			{goalFieldProtein, "Protein target", fmt.Sprintf("%.0f g", v.goals.DailyProteinG)},
			{goalFieldTrackProtein, "Track protein", checkbox(v.goals.TrackProtein)},
			{goalFieldCarbs, "Carb target", fmt.Sprintf("%.0f g", v.goals.DailyCarbsG)},
			{goalFieldTrackCarbs, "Track carbs", checkbox(v.goals.TrackCarbs)},
			{goalFieldFat, "Fat target", fmt.Sprintf("%.0f g", v.goals.DailyFatG)},
			{goalFieldTrackFat, "Track fat", checkbox(v.goals.TrackFat)},
		}

		for _, row := range rows {
			line := styles.Pad(row.label, 18) + row.value
			if row.field == v.cursor {
				b.WriteString(styles.AccentStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}

		b.WriteString("\n")
		if v.dirty {
			b.WriteString(styles.ErrorStyle.Render("unsaved changes"))
			b.WriteString(styles.DimStyle.Render("  ctrl+s save · u revert"))
		} else {
			b.WriteString(styles.DimStyle.Render("h/l adjust · space toggle · esc back"))
		}
	}

	frameW, frameH := styles.ActiveBorder.GetFrameSize()
	return styles.ActiveBorder.
		Width(v.width - frameW).
		Height(v.height - frameH).
		Render(lipgloss.NewStyle().Padding(0, 1).Render(b.String()))
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
