package general

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/habit-tracker/internal/keys"
	"github.com/nhle/habit-tracker/internal/tracker"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newGeneral(t *testing.T, names ...string) (Model, *tracker.Tracker) {
	t.Helper()
	tr := tracker.New(tracker.Options{NewID: tracker.SequentialIDs("g-")})
	for _, n := range names {
		if _, err := tr.AddGeneral(context.Background(), n, ""); err != nil {
			t.Fatal(err)
		}
	}
	return New(tr, keys.DefaultKeyMap(), 80, 24), tr
}

func TestListAndToggle(t *testing.T) {
	m, tr := newGeneral(t, "Buy milk", "Call mom")

	if out := m.View(); !strings.Contains(out, "Buy milk") || !strings.Contains(out, "Call mom") {
		t.Fatalf("expected both tasks listed:\n%s", out)
	}

	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("x"))

	got := tr.General()
	if got[0].Completed || !got[1].Completed {
		t.Errorf("expected only the second task completed, got %+v", got)
	}
	if !strings.Contains(m.View(), "[x]") {
		t.Error("expected completed marker after refresh")
	}
}

func TestSaveAddsAndEdits(t *testing.T) {
	m, tr := newGeneral(t, "Buy milk")

	m.fb.name = "Water plants"
	m.fb.color = "#34c759"
	m.save()

	got := tr.General()
	if len(got) != 2 || got[1].Name != "Water plants" || got[1].Color != "#34c759" {
		t.Fatalf("unexpected list after add: %+v", got)
	}
	if m.selectedIdx != 1 {
		t.Errorf("expected cursor on the new task, got %d", m.selectedIdx)
	}

	m.editingID = got[0].ID
	m.fb.name = "Buy oat milk"
	m.save()
	if tr.General()[0].Name != "Buy oat milk" {
		t.Errorf("expected rename, got %+v", tr.General())
	}
}

func TestFormAndConfirmModes(t *testing.T) {
	m, _ := newGeneral(t, "Buy milk")

	fm, _ := m.Update(runes("n"))
	if !fm.InForm() || !strings.Contains(fm.View(), "New General Task") {
		t.Error("expected add form")
	}

	dm, _ := m.Update(runes("d"))
	if dm.mode != modeConfirmDelete {
		t.Error("expected confirm mode")
	}
}

func TestEmptyAndClose(t *testing.T) {
	m, _ := newGeneral(t)

	if !strings.Contains(m.View(), "No general tasks yet") {
		t.Error("expected empty state")
	}
	if m2, _ := m.Update(runes("d")); m2.InForm() {
		t.Error("delete on an empty list should not open a dialog")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(CloseMsg); !ok {
		t.Error("expected CloseMsg on esc")
	}
}
