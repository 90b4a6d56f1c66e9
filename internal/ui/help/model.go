package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/habit-tracker/internal/keys"
	"github.com/nhle/habit-tracker/internal/model"
	"github.com/nhle/habit-tracker/internal/theme"
)

// commandsHelp lists the command palette entries below the key table.
const commandsHelp = ":today  :general  :theme  :month YYYY-M  :quit"

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	h.ShowAll = true
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Render("Keyboard Shortcuts"),
		m.help.View(m.keys),
		"",
		theme.TitleStyle.Render("Commands"),
		theme.HelpStyle.Render(commandsHelp),
		"",
		theme.TitleStyle.Render("Repeat rules"),
		theme.HelpStyle.Render(repeatHelp()),
	)

	return theme.PanelStyle.
		Width(max(m.width-4, 20)).
		Height(max(m.height-4, 5)).
		Render(content)
}

// repeatHelp lists the badges a repeating task can carry.
func repeatHelp() string {
	labels := make([]string, len(model.RepeatTypes))
	for i, r := range model.RepeatTypes {
		labels[i] = "🔁 " + r.Label()
	}
	return strings.Join(labels, "  ")
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
