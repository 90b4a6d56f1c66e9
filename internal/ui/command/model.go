package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/habit-tracker/internal/theme"
)

// Command names understood by the root model.
const (
	Today   = "today"
	General = "general"
	Theme   = "theme"
	Month   = "month"
	Quit    = "quit"
)

// Names lists the palette commands offered as completions.
var Names = []string{Today, General, Theme, Month, Quit}

// CommandMsg is emitted when the user executes a command.
type CommandMsg struct {
	Name string
	Args []string
}

// CancelMsg is emitted when the palette is dismissed with esc.
type CancelMsg struct{}

// Parse splits a palette line into a command name and its arguments. Names
// are matched case-insensitively and may be given as any unique prefix.
func Parse(line string) (CommandMsg, bool) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if len(fields) == 0 {
		return CommandMsg{}, false
	}

	name := strings.ToLower(fields[0])

	var match string
	for _, n := range Names {
		if n == name {
			match = n
			break
		}
		if strings.HasPrefix(n, name) {
			if match != "" {
				return CommandMsg{}, false
			}
			match = n
		}
	}
	if match == "" {
		return CommandMsg{}, false
	}
	return CommandMsg{Name: match, Args: fields[1:]}, true
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	err    string
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Names)
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			line := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(line) == "" {
				return m, nil
			}
			parsed, ok := Parse(line)
			if !ok {
				m.err = "unknown command: " + strings.TrimSpace(line)
				return m, nil
			}
			m.err = ""
			return m, func() tea.Msg { return parsed }
		case "esc":
			m.input.Reset()
			m.err = ""
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	parts := []string{
		theme.TitleStyle.Render("Command Palette"),
		m.input.View(),
	}
	if m.err != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ColorRed).Render(m.err))
	}

	return theme.PanelStyle.
		Width(max(m.width-4, 20)).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
