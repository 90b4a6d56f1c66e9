package day

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/habit-tracker/internal/dateutil"
	"github.com/nhle/habit-tracker/internal/keys"
	"github.com/nhle/habit-tracker/internal/model"
	"github.com/nhle/habit-tracker/internal/theme"
	"github.com/nhle/habit-tracker/internal/ui"
)

// BackMsg signals the parent to return to the calendar.
type BackMsg struct{}

// NewTaskMsg asks the parent to open the task form for a new task on Date.
type NewTaskMsg struct {
	Date string
}

// EditTaskMsg asks the parent to open the task form on an existing instance.
type EditTaskMsg struct {
	Date     string
	Instance model.TaskInstance
}

// Tasks is the slice of the tracker the day view reads and mutates.
type Tasks interface {
	InstancesOn(date string) []model.TaskInstance
	RepeatLabel(templateID string) string
	ToggleTask(ctx context.Context, date, id string) (bool, error)
	DeleteTask(ctx context.Context, date, id string) (bool, error)
}

type dayMode int

const (
	modeList dayMode = iota
	modeConfirmDelete
)

type formBindings struct {
	confirm bool
}

// Model is the timeline of one day's task instances.
type Model struct {
	mode        dayMode
	tasks       Tasks
	keys        *keys.KeyMap
	date        string
	items       []model.TaskInstance
	selectedIdx int
	confirmForm *huh.Form
	fb          *formBindings
	width       int
	height      int
}

// New creates a day view bound to tasks.
func New(t Tasks, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:   modeList,
		tasks:  t,
		keys:   k,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Open shows date, resetting the cursor.
func (m *Model) Open(date string) {
	m.date = date
	m.selectedIdx = 0
	m.mode = modeList
	m.Refresh()
}

// Date returns the date on display.
func (m Model) Date() string {
	return m.date
}

// Refresh reloads the instances of the current date, keeping the cursor
// in range.
func (m *Model) Refresh() {
	m.items = m.tasks.InstancesOn(m.date)
	if m.selectedIdx >= len(m.items) {
		m.selectedIdx = max(len(m.items)-1, 0)
	}
}

// InForm reports whether the delete confirmation owns the keyboard.
func (m Model) InForm() bool {
	return m.mode != modeList
}

// Selected returns the instance under the cursor.
func (m Model) Selected() (model.TaskInstance, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.items) {
		return model.TaskInstance{}, false
	}
	return m.items[m.selectedIdx], true
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.mode == modeConfirmDelete {
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
		return m, func() tea.Msg { return BackMsg{} }

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
		date := m.date
		return m, func() tea.Msg { return NewTaskMsg{Date: date} }

	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Select):
		inst, ok := m.Selected()
		if !ok {
			return m, nil
		}
		date := m.date
		return m, func() tea.Msg { return EditTaskMsg{Date: date, Instance: inst} }

	case key.Matches(msg, m.keys.Toggle):
		inst, ok := m.Selected()
		if !ok {
			return m, nil
		}
		_, err := m.tasks.ToggleTask(context.Background(), m.date, inst.ID)
		m.Refresh()
		if err != nil {
			return m, ui.Status("", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.Selected(); !ok {
			return m, nil
		}
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

func (m Model) buildConfirmForm() *huh.Form {
	inst, _ := m.Selected()

	desc := "This task will be removed from this day."
	if inst.IsRepeating {
		desc = "This is a repeating task. Every occurrence on every day will be deleted."
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", inst.Name)).
				Description(desc).
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth())
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
		if !m.fb.confirm {
			return m, nil
		}
		inst, ok := m.Selected()
		if !ok {
			return m, nil
		}
		_, err := m.tasks.DeleteTask(context.Background(), m.date, inst.ID)
		m.Refresh()
		if err != nil {
			return m, ui.Status("", err)
		}
		return m, ui.Status(fmt.Sprintf("Deleted %q", inst.Name), nil)
	case huh.StateAborted:
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

// View renders the day timeline.
func (m Model) View() string {
	if m.mode == modeConfirmDelete && m.confirmForm != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.confirmForm.View())
	}

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render(LongDate(m.date)))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(theme.HelpStyle.Render("No tasks for this day. Press 'n' to add one."))
	}
	for i, inst := range m.items {
		line := m.renderItem(inst)
		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

func (m Model) renderItem(inst model.TaskInstance) string {
	check := "[ ]"
	name := inst.Name
	if inst.Completed {
		check = "[x]"
		name = theme.DimmedStyle.Render(name)
	}

	parts := []string{
		check,
		theme.TaskColor(inst.Color).Render("●"),
		fmt.Sprintf("%-19s", TimeRange(inst)),
		name,
	}
	if inst.IsRepeating {
		if label := m.tasks.RepeatLabel(inst.TemplateID); label != "" {
			parts = append(parts, theme.RepeatBadgeStyle.Render(Badge(label)))
		}
	}
	return strings.Join(parts, " ")
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

// TimeRange renders "7:00 AM – 8:00 AM", dropping a missing end.
func TimeRange(inst model.TaskInstance) string {
	start := dateutil.FormatDisplayTime(inst.StartTime)
	if inst.EndTime == "" {
		return start
	}
	return start + " – " + dateutil.FormatDisplayTime(inst.EndTime)
}

// Badge renders the recurrence badge text for a repeat label.
func Badge(label string) string {
	return "🔁 " + label
}

// LongDate renders a date key as "Wednesday, October 14, 2026".
func LongDate(date string) string {
	t, err := dateutil.TimeOf(date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}
