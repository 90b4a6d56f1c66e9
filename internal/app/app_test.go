package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/habit-tracker/internal/model"
	"github.com/nhle/habit-tracker/internal/schedule"
	"github.com/nhle/habit-tracker/internal/testutil"
	"github.com/nhle/habit-tracker/internal/tracker"
	"github.com/nhle/habit-tracker/internal/ui"
	"github.com/nhle/habit-tracker/internal/ui/calendar"
	"github.com/nhle/habit-tracker/internal/ui/command"
	"github.com/nhle/habit-tracker/internal/ui/day"
	"github.com/nhle/habit-tracker/internal/ui/taskform"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newApp(t *testing.T, opts Options) (Model, *tracker.Tracker) {
	t.Helper()
	s := testutil.NewTestStore(t)
	tr := tracker.New(tracker.Options{
		Persister: s,
		Clock:     testutil.FixedClock(2026, time.October, 14),
		NewID:     tracker.SequentialIDs("id-"),
	})
	opts.Tracker = tr
	m := New(opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), tr
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestOpenDayAndAddTask(t *testing.T) {
	m, tr := newApp(t, Options{})

	m, _ = update(t, m, calendar.OpenDayMsg{Date: "2026-10-14"})
	if m.currentView != ViewDay {
		t.Fatalf("expected day view, got %v", m.currentView)
	}

	m, _ = update(t, m, day.NewTaskMsg{Date: "2026-10-14"})
	if m.currentView != ViewTaskForm {
		t.Fatalf("expected task form, got %v", m.currentView)
	}

	m, cmd := update(t, m, taskform.TaskSubmittedMsg{
		Date:   "2026-10-14",
		Fields: model.TaskFields{Name: "Gym", StartTime: "07:00", EndTime: "08:00"},
		Repeat: tracker.RepeatChoice{Type: model.RepeatWeekdays},
	})
	if m.currentView != ViewDay {
		t.Errorf("expected return to day view, got %v", m.currentView)
	}
	if status, ok := cmd().(ui.StatusMsg); !ok || status.Err != nil {
		t.Errorf("expected success status, got %+v", status)
	}

	got := tr.InstancesOn("2026-10-14")
	if len(got) != 1 || !got[0].IsRepeating {
		t.Fatalf("expected one repeating instance, got %+v", got)
	}
	if n := len(tr.InstancesOn("2026-10-17")); n != 0 {
		t.Errorf("weekday task should skip Saturday, found %d", n)
	}
	if !strings.Contains(m.View(), "Gym") {
		t.Error("expected day view to show the new task")
	}
}

func TestCustomRepeatWithoutDaysShowsError(t *testing.T) {
	m, tr := newApp(t, Options{})

	m, cmd := update(t, m, taskform.TaskSubmittedMsg{
		Date:   "2026-10-14",
		Fields: model.TaskFields{Name: "Swim", StartTime: "06:00", EndTime: "07:00"},
		Repeat: tracker.RepeatChoice{Type: model.RepeatCustom},
	})
	m, _ = update(t, m, cmd())

	if !m.statusErr {
		t.Error("expected error status")
	}
	if n := len(tr.InstancesOn("2026-10-14")); n != 0 {
		t.Errorf("nothing should be added, found %d", n)
	}
}

func TestMonthChangeMaterializes(t *testing.T) {
	m, tr := newApp(t, Options{})
	ctx := context.Background()
	if _, err := tr.AddTask(ctx, "2026-10-14", model.TaskFields{Name: "Read", StartTime: "21:00", EndTime: "21:30"},
		tracker.RepeatChoice{Type: model.RepeatDaily}); err != nil {
		t.Fatal(err)
	}

	m, cmd := update(t, m, command.CommandMsg{Name: command.Month, Args: []string{"2026-11"}})
	if cmd == nil {
		t.Fatal("expected a month change command")
	}
	m, _ = update(t, m, cmd())

	if y, mo := m.calendar.Month(); y != 2026 || mo != 11 {
		t.Errorf("expected calendar on 2026-11, got %d-%d", y, mo)
	}
	if n := len(tr.InstancesOn("2026-11-30")); n != 1 {
		t.Errorf("expected November filled, found %d on 2026-11-30", n)
	}
}

func TestBadMonthCommand(t *testing.T) {
	m, _ := newApp(t, Options{})

	m, cmd := update(t, m, command.CommandMsg{Name: command.Month, Args: []string{"2026-13"}})
	m, _ = update(t, m, cmd())
	if !m.statusErr {
		t.Error("expected error status for invalid month")
	}
}

func TestGlobalKeys(t *testing.T) {
	m, _ := newApp(t, Options{})

	m, _ = update(t, m, runes("?"))
	if m.currentView != ViewHelp {
		t.Fatalf("expected help view, got %v", m.currentView)
	}
	m, _ = update(t, m, runes("?"))
	if m.currentView != ViewCalendar {
		t.Fatalf("expected calendar after closing help, got %v", m.currentView)
	}

	m, _ = update(t, m, runes("g"))
	if m.currentView != ViewGeneral {
		t.Fatalf("expected general view, got %v", m.currentView)
	}
	m, _ = update(t, m, runes("q"))
	if m.currentView != ViewGeneral {
		t.Error("q outside the calendar should not quit")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, cmd())
	if m.currentView != ViewCalendar {
		t.Fatalf("expected calendar after esc, got %v", m.currentView)
	}

	_, cmd = update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestThemeToggleSaves(t *testing.T) {
	var saved []string
	m, _ := newApp(t, Options{
		Theme: model.ThemeDark,
		SaveTheme: func(_ context.Context, mode string) error {
			saved = append(saved, mode)
			return nil
		},
	})

	m, _ = update(t, m, runes("T"))
	if len(saved) != 1 || saved[0] != model.ThemeLight {
		t.Errorf("expected light saved, got %v", saved)
	}
	if m.themeMode != model.ThemeLight {
		t.Errorf("themeMode = %q", m.themeMode)
	}
}

func TestRolloverUpdatesToday(t *testing.T) {
	m, tr := newApp(t, Options{})

	m, cmd := update(t, m, schedule.RolloverMsg{At: time.Now()})
	if cmd != nil {
		t.Error("without a scheduler there is nothing to wait on")
	}
	if m.calendar.Selected() != tr.Today() {
		t.Errorf("cursor %q should still be on today %q", m.calendar.Selected(), tr.Today())
	}
}
