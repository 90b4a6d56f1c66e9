package day

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/habit-tracker/internal/keys"
	"github.com/nhle/habit-tracker/internal/model"
	"github.com/nhle/habit-tracker/internal/tracker"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newDay(t *testing.T) (Model, *tracker.Tracker) {
	t.Helper()
	tr := tracker.New(tracker.Options{NewID: tracker.SequentialIDs("id-")})
	ctx := context.Background()
	if _, err := tr.AddTask(ctx, "2026-10-14", model.TaskFields{Name: "Lunch", StartTime: "12:00", EndTime: "13:00"}, tracker.RepeatChoice{}); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.AddTask(ctx, "2026-10-14", model.TaskFields{Name: "Gym", StartTime: "07:00", EndTime: "08:00"},
		tracker.RepeatChoice{Type: model.RepeatDaily}); err != nil {
		t.Fatal(err)
	}

	m := New(tr, keys.DefaultKeyMap(), 80, 24)
	m.Open("2026-10-14")
	return m, tr
}

func TestViewListsTimeline(t *testing.T) {
	m, _ := newDay(t)
	out := m.View()

	for _, want := range []string{"Wednesday, October 14, 2026", "7:00 AM – 8:00 AM", "Gym", "🔁 Daily", "12:00 PM – 1:00 PM"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Gym") > strings.Index(out, "Lunch") {
		t.Error("expected the 07:00 task above the 12:00 task")
	}
}

func TestToggleSelected(t *testing.T) {
	m, tr := newDay(t)

	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("x"))

	got := tr.InstancesOn("2026-10-14")
	if got[0].Completed || !got[1].Completed {
		t.Errorf("expected only the second task toggled, got %+v", got)
	}
	if inst, _ := m.Selected(); !inst.Completed {
		t.Error("expected view to refresh after toggle")
	}
}

func TestEditAndNewMessages(t *testing.T) {
	m, _ := newDay(t)

	_, cmd := m.Update(runes("e"))
	msg, ok := cmd().(EditTaskMsg)
	if !ok || msg.Date != "2026-10-14" || msg.Instance.Name != "Gym" {
		t.Errorf("unexpected edit message %+v", msg)
	}

	_, cmd = m.Update(runes("n"))
	if nm, ok := cmd().(NewTaskMsg); !ok || nm.Date != "2026-10-14" {
		t.Errorf("unexpected new message %+v", nm)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(BackMsg); !ok {
		t.Error("expected BackMsg on esc")
	}
}

func TestDeleteOpensConfirm(t *testing.T) {
	m, tr := newDay(t)

	m, _ = m.Update(runes("d"))
	if m.mode != modeConfirmDelete {
		t.Fatal("expected confirm mode")
	}
	if !strings.Contains(m.View(), "Every occurrence") {
		t.Errorf("expected repeating warning in confirm view:\n%s", m.View())
	}
	if n := len(tr.InstancesOn("2026-10-14")); n != 2 {
		t.Errorf("nothing should be deleted before confirming, have %d", n)
	}
}

func TestEmptyDay(t *testing.T) {
	m, _ := newDay(t)
	m.Open("2026-9-1")

	if !strings.Contains(m.View(), "No tasks for this day") {
		t.Error("expected empty state")
	}
	if _, cmd := m.Update(runes("x")); cmd != nil {
		t.Error("expected toggle on empty day to do nothing")
	}
}

func TestTimeRange(t *testing.T) {
	if got := TimeRange(model.TaskInstance{StartTime: "00:05"}); got != "12:05 AM" {
		t.Errorf("TimeRange without end = %q", got)
	}
}
