package taskform

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/habit-tracker/internal/dateutil"
	"github.com/nhle/habit-tracker/internal/model"
	"github.com/nhle/habit-tracker/internal/theme"
	"github.com/nhle/habit-tracker/internal/tracker"
)

// TaskSubmittedMsg is dispatched when the form completes. ID is empty for a
// new task; Repeat is only meaningful for a new task.
type TaskSubmittedMsg struct {
	Date   string
	ID     string
	Fields model.TaskFields
	Repeat tracker.RepeatChoice
}

// TaskFormCancelMsg is dispatched when the user cancels the form.
type TaskFormCancelMsg struct{}

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name       string
	start      string
	end        string
	color      string
	repeat     model.RepeatType
	customDays []int
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form        *huh.Form
	fb          *formBindings
	editMode    bool
	editID      string
	repeatLabel string
	date        string
	width       int
	height      int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new task on date.
func (m *Model) StartCreate(date string) tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.repeatLabel = ""
	m.date = date
	*m.fb = formBindings{
		start:  "09:00",
		end:    "10:00",
		color:  model.DefaultColor(),
		repeat: model.RepeatNone,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form on an existing instance. repeatLabel is
// the owning template's label, empty for a one-off task.
func (m *Model) StartEdit(date string, inst model.TaskInstance, repeatLabel string) tea.Cmd {
	m.editMode = true
	m.editID = inst.ID
	m.repeatLabel = repeatLabel
	m.date = date
	*m.fb = formBindings{
		name:   inst.Name,
		start:  inst.StartTime,
		end:    inst.EndTime,
		color:  inst.Color,
		repeat: model.RepeatNone,
	}
	if !model.InPalette(m.fb.color) {
		m.fb.color = model.DefaultColor()
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Editing reports whether the form edits an existing instance.
func (m Model) Editing() bool {
	return m.editMode
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return TaskFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}
	if t, err := dateutil.TimeOf(m.date); err == nil {
		titleText += " · " + t.Format("Mon Jan 2, 2006")
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Placeholder("What are you doing?").
			Value(&m.fb.name).
			Validate(validateRequired("Name")),
		huh.NewInput().
			Title("Start").
			Placeholder("HH:MM").
			Value(&m.fb.start).
			Validate(validateTime),
		huh.NewInput().
			Title("End").
			Placeholder("HH:MM").
			Value(&m.fb.end).
			Validate(m.validateEnd),
		m.colorField(),
	}
	if m.editMode {
		fields = append(fields, m.repeatNote())
	} else {
		fields = append(fields, m.repeatField())
	}

	groups := []*huh.Group{huh.NewGroup(fields...)}
	if !m.editMode {
		groups = append(groups,
			huh.NewGroup(m.customDaysField()).
				WithHideFunc(func() bool { return m.fb.repeat != model.RepeatCustom }),
		)
	}

	return huh.NewForm(groups...).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight())
}

func (m *Model) colorField() huh.Field {
	opts := make([]huh.Option[string], len(model.Palette))
	for i, c := range model.Palette {
		label := theme.TaskColor(c).Render("●") + " " + model.ColorName(c)
		opts[i] = huh.NewOption(label, c)
	}
	return huh.NewSelect[string]().
		Title("Color").
		Options(opts...).
		Value(&m.fb.color)
}

func (m *Model) repeatField() huh.Field {
	opts := []huh.Option[model.RepeatType]{
		huh.NewOption("Does not repeat", model.RepeatNone),
	}
	for _, r := range model.RepeatTypes {
		opts = append(opts, huh.NewOption(r.Label(), r))
	}
	return huh.NewSelect[model.RepeatType]().
		Title("Repeat").
		Options(opts...).
		Value(&m.fb.repeat)
}

func (m *Model) repeatNote() huh.Field {
	desc := "Does not repeat."
	if m.repeatLabel != "" {
		desc = fmt.Sprintf("Repeats: %s. Changes apply to this occurrence only.", m.repeatLabel)
	}
	return huh.NewNote().
		Title("Repeat").
		Description(desc)
}

func (m *Model) customDaysField() huh.Field {
	opts := make([]huh.Option[int], len(weekdayNames))
	for i, name := range weekdayNames {
		opts[i] = huh.NewOption(name, i)
	}
	return huh.NewMultiSelect[int]().
		Title("Repeat on").
		Options(opts...).
		Value(&m.fb.customDays).
		Validate(func(days []int) error {
			if len(days) == 0 {
				return errors.New("pick at least one day")
			}
			return nil
		})
}

func (m Model) handleSubmit() tea.Cmd {
	msg := TaskSubmittedMsg{
		Date: m.date,
		ID:   m.editID,
		Fields: model.TaskFields{
			Name:      strings.TrimSpace(m.fb.name),
			StartTime: strings.TrimSpace(m.fb.start),
			EndTime:   strings.TrimSpace(m.fb.end),
			Color:     m.fb.color,
		},
	}
	if !m.editMode && m.fb.repeat != model.RepeatNone {
		msg.Repeat = tracker.RepeatChoice{Type: m.fb.repeat}
		if m.fb.repeat == model.RepeatCustom {
			msg.Repeat.CustomDays = append([]int(nil), m.fb.customDays...)
		}
	}
	return func() tea.Msg { return msg }
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateTime(s string) error {
	if !dateutil.ValidTime(s) {
		return errors.New("invalid time, use HH:MM (24-hour)")
	}
	return nil
}

func (m *Model) validateEnd(s string) error {
	if err := validateTime(s); err != nil {
		return err
	}
	start := strings.TrimSpace(m.fb.start)
	if dateutil.ValidTime(start) && normalizeTime(s) < normalizeTime(start) {
		return errors.New("end must not be before start")
	}
	return nil
}

// normalizeTime zero pads a valid "H:MM" so times compare as strings.
func normalizeTime(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 4 {
		return "0" + s
	}
	return s
}
