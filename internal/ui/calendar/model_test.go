package calendar

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/habit-tracker/internal/dateutil"
	"github.com/nhle/habit-tracker/internal/keys"
)

type fakeDots map[string][]string

func (f fakeDots) CalendarDots(date string) []string { return f[date] }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newCalendar() Model {
	return New(keys.DefaultKeyMap(), fakeDots{}, "2026-10-14", 0, 80, 24)
}

func TestMonthGrid(t *testing.T) {
	tests := []struct {
		name      string
		weekStart int
		first     string
		last      string
	}{
		// October 2026 starts on a Thursday and ends on a Saturday.
		{"sunday start", 0, "2026-9-27", "2026-10-31"},
		{"monday start", 1, "2026-9-28", "2026-11-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weeks := monthGrid(2026, 10, tt.weekStart)
			if len(weeks) != 5 {
				t.Fatalf("expected 5 weeks, got %d", len(weeks))
			}
			if got := dateutil.KeyOf(weeks[0][0]); got != tt.first {
				t.Errorf("first cell = %s, want %s", got, tt.first)
			}
			if got := dateutil.KeyOf(weeks[4][6]); got != tt.last {
				t.Errorf("last cell = %s, want %s", got, tt.last)
			}
			for _, week := range weeks {
				if int(week[0].Weekday()) != tt.weekStart {
					t.Errorf("week starts on %s", week[0].Weekday())
				}
			}
		})
	}
}

func TestNavigation(t *testing.T) {
	m := newCalendar()

	steps := []struct {
		key  tea.KeyMsg
		want string
	}{
		{runes("l"), "2026-10-15"},
		{runes("j"), "2026-10-22"},
		{runes("h"), "2026-10-21"},
		{runes("k"), "2026-10-14"},
		{runes("t"), "2026-10-14"},
	}
	for _, s := range steps {
		var cmd tea.Cmd
		m, cmd = m.Update(s.key)
		if m.Selected() != s.want {
			t.Errorf("after %q: selected %s, want %s", s.key.String(), m.Selected(), s.want)
		}
		if cmd != nil {
			t.Errorf("after %q: expected no month change", s.key.String())
		}
	}
}

func TestMonthChange(t *testing.T) {
	m := New(keys.DefaultKeyMap(), fakeDots{}, "2026-1-31", 0, 80, 24)

	m, cmd := m.Update(runes("]"))
	if m.Selected() != "2026-2-28" {
		t.Errorf("expected clamp to Feb 28, got %s", m.Selected())
	}
	if cmd == nil {
		t.Fatal("expected a MonthChangedMsg command")
	}
	msg, ok := cmd().(MonthChangedMsg)
	if !ok || msg.Year != 2026 || msg.Month != 2 {
		t.Errorf("unexpected message %+v", msg)
	}

	m, cmd = m.Update(runes("["))
	m, _ = m.Update(runes("["))
	if m.Selected() != "2025-12-28" {
		t.Errorf("expected 2025-12-28, got %s", m.Selected())
	}
	if cmd == nil {
		t.Error("expected month change when going back")
	}
}

func TestOpenDay(t *testing.T) {
	m := newCalendar()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if msg, ok := cmd().(OpenDayMsg); !ok || msg.Date != "2026-10-14" {
		t.Errorf("unexpected message %#v", msg)
	}
}

func TestGoToInvalidIsIgnored(t *testing.T) {
	m := newCalendar()
	if cmd := m.GoTo("2026-13-1"); cmd != nil {
		t.Error("expected nil command")
	}
	if m.Selected() != "2026-10-14" {
		t.Errorf("cursor moved to %s", m.Selected())
	}
}

func TestViewShowsMonthTitle(t *testing.T) {
	m := New(keys.DefaultKeyMap(), fakeDots{"2026-10-14": {"#007aff"}}, "2026-10-14", 1, 80, 24)
	if out := m.View(); !strings.Contains(out, "October 2026") || !strings.Contains(out, "Mon") {
		t.Errorf("unexpected view:\n%s", out)
	}
}
