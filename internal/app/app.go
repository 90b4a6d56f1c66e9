package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/habit-tracker/internal/dateutil"
	"github.com/nhle/habit-tracker/internal/keys"
	"github.com/nhle/habit-tracker/internal/schedule"
	"github.com/nhle/habit-tracker/internal/theme"
	"github.com/nhle/habit-tracker/internal/tracker"
	"github.com/nhle/habit-tracker/internal/ui"
	"github.com/nhle/habit-tracker/internal/ui/calendar"
	"github.com/nhle/habit-tracker/internal/ui/command"
	"github.com/nhle/habit-tracker/internal/ui/day"
	"github.com/nhle/habit-tracker/internal/ui/general"
	helpview "github.com/nhle/habit-tracker/internal/ui/help"
	"github.com/nhle/habit-tracker/internal/ui/taskform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewCalendar ViewState = iota
	ViewDay
	ViewTaskForm
	ViewGeneral
	ViewHelp
	ViewCommand
)

// Options wires the root model to the tracker and its collaborators. Only
// Tracker is required.
type Options struct {
	Tracker *tracker.Tracker

	// Rollover, when set, delivers a RolloverMsg at local midnight.
	Rollover *schedule.Rollover

	// Theme is the starting preference: auto, dark or light.
	Theme string

	// SaveTheme persists a toggled theme.
	SaveTheme func(ctx context.Context, mode string) error

	// WeekStart is 0 for Sunday or 1 for Monday.
	WeekStart int

	Logger *zap.Logger
}

// Model is the root Bubble Tea model that manages view routing, layout
// and the tracker. Every tracker call happens inside Update.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	tracker      *tracker.Tracker
	rollover     *schedule.Rollover
	saveTheme    func(ctx context.Context, mode string) error
	themeMode    string
	log          *zap.Logger
	keys         *keys.KeyMap
	calendar     calendar.Model
	dayView      day.Model
	taskForm     taskform.Model
	generalView  general.Model
	helpView     helpview.Model
	commandView  command.Model
	status       string
	statusErr    bool
	ready        bool
}

// New creates a new root application model.
func New(opts Options) Model {
	k := keys.DefaultKeyMap()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	t := opts.Tracker

	return Model{
		currentView: ViewCalendar,
		tracker:     t,
		rollover:    opts.Rollover,
		saveTheme:   opts.SaveTheme,
		themeMode:   theme.Apply(opts.Theme),
		log:         log,
		keys:        k,
		calendar:    calendar.New(k, t, t.Today(), opts.WeekStart, 80, 24),
		dayView:     day.New(t, k, 80, 24),
		taskForm:    taskform.New(80, 24),
		generalView: general.New(t, k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
	}
}

// Init materializes the visible month and starts the midnight scheduler.
func (m Model) Init() tea.Cmd {
	y, mo := m.calendar.Month()
	cmds := []tea.Cmd{
		func() tea.Msg { return calendar.MonthChangedMsg{Year: y, Month: mo} },
	}
	if m.rollover != nil {
		wait, err := m.rollover.Start()
		if err != nil {
			cmds = append(cmds, ui.Status("", err))
		}
		cmds = append(cmds, wait)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.calendar.SetSize(contentWidth, contentHeight)
		m.dayView.SetSize(contentWidth, contentHeight)
		m.taskForm.SetSize(contentWidth, contentHeight)
		m.generalView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case ui.StatusMsg:
		m.setStatus(msg.Text, msg.Err)
		return m, nil

	case schedule.RolloverMsg:
		today := m.tracker.Today()
		m.log.Info("date rolled over", zap.String("today", today))
		m.calendar.SetToday(today)
		if y, mo, _, err := dateutil.ParseDateKey(today); err == nil {
			m.ensureMonth(y, mo)
		}
		if m.currentView == ViewDay {
			m.dayView.Refresh()
		}
		if m.rollover == nil {
			return m, nil
		}
		return m, m.rollover.Wait()

	case calendar.MonthChangedMsg:
		m.ensureMonth(msg.Year, msg.Month)
		return m, nil

	case calendar.OpenDayMsg:
		m.dayView.Open(msg.Date)
		m.currentView = ViewDay
		return m, nil

	case day.BackMsg:
		m.currentView = ViewCalendar
		return m, nil

	case day.NewTaskMsg:
		m.currentView = ViewTaskForm
		return m, m.taskForm.StartCreate(msg.Date)

	case day.EditTaskMsg:
		label := ""
		if msg.Instance.IsRepeating {
			label = m.tracker.RepeatLabel(msg.Instance.TemplateID)
		}
		m.currentView = ViewTaskForm
		return m, m.taskForm.StartEdit(msg.Date, msg.Instance, label)

	case taskform.TaskSubmittedMsg:
		m.currentView = ViewDay
		cmd := m.submitTask(msg)
		m.dayView.Refresh()
		return m, cmd

	case taskform.TaskFormCancelMsg:
		m.currentView = ViewDay
		return m, nil

	case general.CloseMsg:
		m.currentView = ViewCalendar
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(msg)

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		m.status, m.statusErr = "", false

		if !m.capturingInput() {
			switch {
			case key.Matches(msg, m.keys.Quit) && m.currentView == ViewCalendar:
				return m, m.quit()

			case key.Matches(msg, m.keys.Help):
				if m.currentView == ViewHelp {
					m.currentView = m.previousView
					return m, nil
				}
				m.previousView = m.currentView
				m.currentView = ViewHelp
				return m, nil

			case key.Matches(msg, m.keys.Command):
				m.previousView = m.currentView
				m.currentView = ViewCommand
				return m, m.commandView.Focus()

			case key.Matches(msg, m.keys.Back) && m.currentView == ViewHelp:
				m.currentView = m.previousView
				return m, nil

			case key.Matches(msg, m.keys.General) && m.currentView == ViewCalendar:
				m.openGeneral()
				return m, nil

			case key.Matches(msg, m.keys.Theme) && m.currentView == ViewCalendar:
				return m, m.toggleTheme()
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// capturingInput reports whether the active view owns every key, as forms
// and the command palette do.
func (m Model) capturingInput() bool {
	switch m.currentView {
	case ViewTaskForm, ViewCommand:
		return true
	case ViewDay:
		return m.dayView.InForm()
	case ViewGeneral:
		return m.generalView.InForm()
	}
	return false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewCalendar:
		m.calendar, cmd = m.calendar.Update(msg)
	case ViewDay:
		m.dayView, cmd = m.dayView.Update(msg)
	case ViewTaskForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewGeneral:
		m.generalView, cmd = m.generalView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Habit Tracker", day.LongDate(m.tracker.Today()))
	content := m.renderContent()

	var statusBar string
	switch {
	case m.statusErr:
		statusBar = m.layout.RenderErrorBar(m.status)
	case m.status != "":
		statusBar = m.layout.RenderStatusBar(m.status)
	default:
		statusBar = m.layout.RenderStatusBar(m.keyHints())
	}

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewCalendar:
		return m.calendar.View()
	case ViewDay:
		return m.dayView.View()
	case ViewTaskForm:
		return m.taskForm.View()
	case ViewGeneral:
		return m.generalView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewTaskForm:
		return "enter next | shift+tab back | esc cancel"
	case ViewDay:
		if m.dayView.InForm() {
			return "←/→ choose | enter confirm | esc cancel"
		}
		return "n new | e edit | x toggle | d delete | esc calendar"
	case ViewGeneral:
		if m.generalView.InForm() {
			return "enter submit | esc cancel"
		}
		return "n new | e edit | x toggle | d delete | esc calendar"
	default:
		return "q quit | ? help | enter open day | [/] month | t today | g general | T theme"
	}
}

func (m *Model) setStatus(text string, err error) {
	if err != nil {
		m.status, m.statusErr = err.Error(), true
		m.log.Warn("operation failed", zap.Error(err))
		return
	}
	m.status, m.statusErr = text, false
}

func (m *Model) ensureMonth(year, month int) {
	if _, err := m.tracker.EnsureMonth(context.Background(), year, month); err != nil {
		m.setStatus("", err)
	}
}

func (m *Model) submitTask(msg taskform.TaskSubmittedMsg) tea.Cmd {
	ctx := context.Background()

	if msg.ID != "" {
		if _, err := m.tracker.EditTask(ctx, msg.Date, msg.ID, msg.Fields); err != nil {
			return ui.Status("", err)
		}
		return ui.Status(fmt.Sprintf("Updated %q", msg.Fields.Name), nil)
	}

	_, err := m.tracker.AddTask(ctx, msg.Date, msg.Fields, msg.Repeat)
	switch {
	case errors.Is(err, tracker.ErrNoCustomDays):
		return ui.Status("", err)
	case err != nil:
		return ui.Status("", fmt.Errorf("adding %q: %w", msg.Fields.Name, err))
	}
	return ui.Status(fmt.Sprintf("Added %q", msg.Fields.Name), nil)
}

func (m *Model) openGeneral() {
	m.generalView.Refresh()
	m.currentView = ViewGeneral
}

func (m *Model) toggleTheme() tea.Cmd {
	m.themeMode = theme.Toggle(m.themeMode)
	if m.saveTheme != nil {
		if err := m.saveTheme(context.Background(), m.themeMode); err != nil {
			return ui.Status("", fmt.Errorf("saving theme: %w", err))
		}
	}
	return ui.Status("Theme: "+m.themeMode, nil)
}

func (m *Model) quit() tea.Cmd {
	if m.rollover != nil {
		m.rollover.Stop()
	}
	return tea.Quit
}

// executeCommand handles a parsed command from the command palette.
func (m *Model) executeCommand(cmd command.CommandMsg) tea.Cmd {
	switch cmd.Name {
	case command.Today:
		m.currentView = ViewCalendar
		return m.calendar.GoTo(m.tracker.Today())
	case command.General:
		m.openGeneral()
		return nil
	case command.Theme:
		return m.toggleTheme()
	case command.Month:
		if len(cmd.Args) != 1 {
			return ui.Status("", errors.New("usage: :month YYYY-M"))
		}
		y, mo, _, err := dateutil.ParseDateKey(strings.TrimSpace(cmd.Args[0]) + "-1")
		if err != nil {
			return ui.Status("", fmt.Errorf("month %q: %w", cmd.Args[0], err))
		}
		m.currentView = ViewCalendar
		return m.calendar.GoTo(dateutil.DateKey(y, mo, 1))
	case command.Quit:
		return m.quit()
	default:
		return nil
	}
}
