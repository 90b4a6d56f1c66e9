package general

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/habit-tracker/internal/keys"
	"github.com/nhle/habit-tracker/internal/model"
	"github.com/nhle/habit-tracker/internal/theme"
	"github.com/nhle/habit-tracker/internal/ui"
)

// CloseMsg signals the parent to close the general task view.
type CloseMsg struct{}

// Tasks is the slice of the tracker the general view works on.
type Tasks interface {
	General() []model.GeneralTask
	AddGeneral(ctx context.Context, name, color string) (string, error)
	EditGeneral(ctx context.Context, id, name, color string) (bool, error)
	ToggleGeneral(ctx context.Context, id string) (bool, error)
	DeleteGeneral(ctx context.Context, id string) (bool, error)
}

type generalMode int

const (
	modeList generalMode = iota
	modeForm
	modeConfirmDelete
)

type formBindings struct {
	name    string
	color   string
	confirm bool
}

// Model lists general tasks with add, edit, toggle and delete.
type Model struct {
	mode        generalMode
	tasks       Tasks
	keys        *keys.KeyMap
	items       []model.GeneralTask
	selectedIdx int
	editingID   string
	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	width       int
	height      int
}

// New creates a general task view.
func New(t Tasks, k *keys.KeyMap, width, height int) Model {
	m := Model{
		mode:  modeList,
		tasks: t,
		keys:  k,
		fb:    &formBindings{},
		width: width, height: height,
	}
	m.Refresh()
	return m
}

// Refresh reloads the list from the tracker.
func (m *Model) Refresh() {
	m.items = m.tasks.General()
	if m.selectedIdx >= len(m.items) {
		m.selectedIdx = max(len(m.items)-1, 0)
	}
}

// InForm reports whether a form or confirm dialog owns the keyboard.
func (m Model) InForm() bool {
	return m.mode != modeList
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleListKey(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if len(m.items) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.items)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.items) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.items) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.editingID = ""
		m.fb.name = ""
		m.fb.color = model.DefaultColor()
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Edit):
		if len(m.items) == 0 {
			return m, nil
		}
		t := m.items[m.selectedIdx]
		m.editingID = t.ID
		m.fb.name = t.Name
		m.fb.color = t.Color
		if !model.InPalette(m.fb.color) {
			m.fb.color = model.DefaultColor()
		}
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Toggle), key.Matches(msg, m.keys.Select):
		if len(m.items) == 0 {
			return m, nil
		}
		_, err := m.tasks.ToggleGeneral(context.Background(), m.items[m.selectedIdx].ID)
		m.Refresh()
		if err != nil {
			return m, ui.Status("", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if len(m.items) == 0 {
			return m, nil
		}
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

func (m Model) buildForm() *huh.Form {
	opts := make([]huh.Option[string], len(model.Palette))
	for i, c := range model.Palette {
		opts[i] = huh.NewOption(theme.TaskColor(c).Render("●")+" "+model.ColorName(c), c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Something to get done").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color").
				Options(opts...).
				Value(&m.fb.color),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildConfirmForm() *huh.Form {
	name := ""
	if m.selectedIdx < len(m.items) {
		name = m.items[m.selectedIdx].Name
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", name)).
				Description("This general task will be removed.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeList
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.mode = modeList
		return m, m.save()
	case huh.StateAborted:
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m *Model) save() tea.Cmd {
	ctx := context.Background()
	var err error
	if m.editingID == "" {
		_, err = m.tasks.AddGeneral(ctx, m.fb.name, m.fb.color)
	} else {
		_, err = m.tasks.EditGeneral(ctx, m.editingID, m.fb.name, m.fb.color)
	}
	m.Refresh()
	if m.editingID == "" && err == nil {
		m.selectedIdx = max(len(m.items)-1, 0)
	}
	if err != nil {
		return ui.Status("", err)
	}
	return ui.Status("General task saved", nil)
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		m.mode = modeList
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	switch m.confirmForm.State {
	case huh.StateCompleted:
		m.mode = modeList
		if !m.fb.confirm || m.selectedIdx >= len(m.items) {
			return m, nil
		}
		t := m.items[m.selectedIdx]
		_, err := m.tasks.DeleteGeneral(context.Background(), t.ID)
		m.Refresh()
		if err != nil {
			return m, ui.Status("", err)
		}
		return m, ui.Status(fmt.Sprintf("Deleted %q", t.Name), nil)
	case huh.StateAborted:
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

// View renders the general task view.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.viewForm(m.form)
	case modeConfirmDelete:
		return m.viewForm(m.confirmForm)
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("General Tasks"))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(theme.HelpStyle.Render("No general tasks yet. Press 'n' to create one."))
	}
	for i, t := range m.items {
		check := "[ ]"
		name := t.Name
		if t.Completed {
			check = "[x]"
			name = theme.DimmedStyle.Render(name)
		}
		label := fmt.Sprintf("%s %s %s", check, theme.TaskColor(t.Color).Render("●"), name)

		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(label))
		} else {
			b.WriteString(theme.ListItemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

func (m Model) viewForm(f *huh.Form) string {
	if f == nil {
		return ""
	}
	title := "New General Task"
	if m.mode == modeForm && m.editingID != "" {
		title = "Edit General Task"
	}
	if m.mode == modeConfirmDelete {
		return lipgloss.NewStyle().Padding(1, 2).Render(f.View())
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(theme.TitleStyle.Render(title) + "\n\n" + f.View())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}
