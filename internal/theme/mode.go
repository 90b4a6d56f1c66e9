package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/habit-tracker/internal/model"
)

// Apply selects the dark or light side of every adaptive color. "auto"
// keeps whatever lipgloss detected from the terminal. It returns the mode
// actually in effect, dark or light.
func Apply(mode string) string {
	switch mode {
	case model.ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	case model.ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
	if lipgloss.HasDarkBackground() {
		return model.ThemeDark
	}
	return model.ThemeLight
}

// Toggle flips the effective mode, applies it and returns the new mode.
func Toggle(current string) string {
	next := model.ThemeDark
	if Apply(current) == model.ThemeDark {
		next = model.ThemeLight
	}
	return Apply(next)
}
