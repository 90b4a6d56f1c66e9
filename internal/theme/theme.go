package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ErrorBarStyle replaces StatusBarStyle while an error is shown.
var ErrorBarStyle = StatusBarStyle.
	Bold(true).
	Background(ColorRed)

// PanelStyle wraps overlay content such as help and the command palette.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// TitleStyle renders a view title above its content.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	MarginBottom(1)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle renders completed tasks.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// NoticeStyle renders transient confirmations inside a view.
var NoticeStyle = lipgloss.NewStyle().
	Foreground(ColorYellow).
	Italic(true)

// RepeatBadgeStyle renders the recurrence badge next to repeating tasks.
var RepeatBadgeStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Padding(0, 1)

// Calendar cell styles.
var (
	CellStyle = lipgloss.NewStyle().
			Width(6).
			Align(lipgloss.Center)

	OutsideMonthStyle = CellStyle.
				Foreground(ColorSubtle)

	TodayStyle = CellStyle.
			Bold(true).
			Foreground(ColorBlue)

	CursorStyle = CellStyle.
			Bold(true).
			Reverse(true)

	WeekdayHeaderStyle = CellStyle.
				Bold(true).
				Foreground(ColorGray)
)

// TaskColor returns a style painting text in the task's palette color.
func TaskColor(hex string) lipgloss.Style {
	if hex == "" {
		return lipgloss.NewStyle().Foreground(ColorBlue)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// Dots renders one colored bullet per color, as shown under a calendar day.
func Dots(colors []string) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = TaskColor(c).Render("•")
	}
	return strings.Join(parts, "")
}
