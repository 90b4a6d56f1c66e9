package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/habit-tracker/internal/theme"
)

// StatusMsg asks the root model to show a line in the status bar. A non-nil
// Err is shown in the error style instead of Text.
type StatusMsg struct {
	Text string
	Err  error
}

// Status returns a command emitting a StatusMsg for err, or for text when
// err is nil.
func Status(text string, err error) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text, Err: err} }
}

// Layout manages the terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the top header bar with a title on the left and
// context (date, theme) on the right.
func (l Layout) RenderHeader(title, context string) string {
	titleRendered := theme.HeaderStyle.Render(title)
	contextRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(context)

	return joinFilled(l.Width, theme.HeaderStyle, titleRendered, contextRendered)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	return joinFilled(l.Width, theme.StatusBarStyle, theme.StatusBarStyle.Render(hints), "")
}

// RenderErrorBar renders the bottom bar in the error style.
func (l Layout) RenderErrorBar(text string) string {
	return joinFilled(l.Width, theme.ErrorBarStyle, theme.ErrorBarStyle.Render(text), "")
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	content = lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}

// joinFilled places left and right on one line of the given width, padding
// the gap with style's background.
func joinFilled(width int, style lipgloss.Style, left, right string) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}
