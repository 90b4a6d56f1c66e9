package tracker

import (
	"testing"

	"github.com/nhle/habit-tracker/internal/model"
)

func inst(id, start string) model.TaskInstance {
	return model.TaskInstance{ID: id, Name: "task " + id, StartTime: start, EndTime: start, Color: "#007aff"}
}

func assertSorted(t *testing.T, list []model.TaskInstance) {
	t.Helper()
	for i := 1; i < len(list); i++ {
		if list[i-1].StartTime > list[i].StartTime {
			t.Fatalf("list not sorted at %d: %s > %s", i, list[i-1].StartTime, list[i].StartTime)
		}
	}
}

func TestUpsertSortsByStartTime(t *testing.T) {
	s := NewTaskStore(nil)
	s.Upsert("2026-10-14", inst("a", "09:00"))
	s.Upsert("2026-10-14", inst("b", "08:00"))

	got := s.InstancesOn("2026-10-14")
	if len(got) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(got))
	}
	if got[0].ID != "b" {
		t.Errorf("expected the 08:00 task first, got %s", got[0].ID)
	}
}

func TestUpsertKeepsInsertionOrderOnTies(t *testing.T) {
	s := NewTaskStore(nil)
	for _, id := range []string{"x", "y", "z"} {
		s.Upsert("2026-10-14", inst(id, "10:00"))
	}
	s.Upsert("2026-10-14", inst("early", "06:00"))

	got := s.InstancesOn("2026-10-14")
	want := []string{"early", "x", "y", "z"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestUpsertReplacesByID(t *testing.T) {
	s := NewTaskStore(nil)
	s.Upsert("2026-10-14", inst("a", "09:00"))
	s.Upsert("2026-10-14", inst("b", "10:00"))

	moved := inst("a", "11:00")
	moved.Name = "moved"
	s.Upsert("2026-10-14", moved)

	got := s.InstancesOn("2026-10-14")
	if len(got) != 2 {
		t.Fatalf("expected replacement, got %d instances", len(got))
	}
	if got[1].ID != "a" || got[1].Name != "moved" {
		t.Errorf("expected moved instance last, got %+v", got[1])
	}
	assertSorted(t, got)
}

func TestRemoveDropsEmptyDate(t *testing.T) {
	s := NewTaskStore(nil)
	s.Upsert("2026-10-14", inst("a", "09:00"))

	if !s.Remove("2026-10-14", "a") {
		t.Fatal("expected Remove to report success")
	}
	if _, ok := s.Snapshot()["2026-10-14"]; ok {
		t.Error("expected date key to be gone after removing its last instance")
	}
	if s.Remove("2026-10-14", "a") {
		t.Error("expected second Remove to be a no-op")
	}
	if got := s.InstancesOn("2026-10-14"); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	s := NewTaskStore(nil)
	s.Upsert("2026-10-14", inst("a", "09:00"))
	s.Upsert("2026-10-14", inst("b", "10:00"))
	before := s.InstancesOn("2026-10-14")

	if !s.ToggleCompletion("2026-10-14", "a") {
		t.Fatal("expected toggle to find the instance")
	}
	if got, _ := s.Find("2026-10-14", "a"); !got.Completed {
		t.Error("expected instance to be completed after one toggle")
	}
	s.ToggleCompletion("2026-10-14", "a")

	after := s.InstancesOn("2026-10-14")
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("position %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestToggleMissingIsNoop(t *testing.T) {
	s := NewTaskStore(nil)
	if s.ToggleCompletion("2026-10-14", "ghost") {
		t.Error("expected toggle of missing instance to report false")
	}
	if len(s.Snapshot()) != 0 {
		t.Error("expected no date to be created by a missed toggle")
	}
}

func TestRemoveByTemplateVisitsAllDates(t *testing.T) {
	s := NewTaskStore(nil)
	linked := func(id, tmpl string) model.TaskInstance {
		i := inst(id, "07:00")
		i.IsRepeating = true
		i.TemplateID = tmpl
		return i
	}
	s.Upsert("2026-10-1", linked("1", "t1"))
	s.Upsert("2026-10-2", linked("2", "t1"))
	s.Upsert("2026-10-2", inst("solo", "12:00"))
	s.Upsert("2026-11-3", linked("3", "t1"))
	s.Upsert("2026-11-3", linked("4", "t2"))

	if n := s.RemoveByTemplate("t1"); n != 3 {
		t.Fatalf("expected 3 removed, got %d", n)
	}
	snap := s.Snapshot()
	if _, ok := snap["2026-10-1"]; ok {
		t.Error("expected emptied date 2026-10-1 to be removed")
	}
	if len(snap["2026-10-2"]) != 1 || snap["2026-10-2"][0].ID != "solo" {
		t.Errorf("expected only the solo task to remain, got %+v", snap["2026-10-2"])
	}
	if len(snap["2026-11-3"]) != 1 || snap["2026-11-3"][0].TemplateID != "t2" {
		t.Errorf("expected t2 instance to survive, got %+v", snap["2026-11-3"])
	}
}

func TestNewTaskStoreNormalizesSnapshot(t *testing.T) {
	s := NewTaskStore(model.TaskSnapshot{
		"2026-10-1": {},
		"2026-10-2": {inst("late", "18:00"), inst("early", "06:00")},
	})
	if len(s.Dates()) != 1 {
		t.Fatalf("expected empty date to be dropped, got %v", s.Dates())
	}
	assertSorted(t, s.InstancesOn("2026-10-2"))
}

func TestColorsOnIsDistinctAndCapped(t *testing.T) {
	s := NewTaskStore(nil)
	colors := []string{"#1", "#2", "#1", "#3", "#4", "#5"}
	for i, c := range colors {
		in := inst(string(rune('a'+i)), "09:00")
		in.Color = c
		s.Upsert("2026-10-14", in)
	}
	got := s.ColorsOn("2026-10-14", 4)
	want := []string{"#1", "#2", "#3", "#4"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("color %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestDatesAreChronological(t *testing.T) {
	s := NewTaskStore(nil)
	for _, d := range []string{"2026-10-10", "2026-9-30", "2026-10-2"} {
		s.Upsert(d, inst(d, "09:00"))
	}
	got := s.Dates()
	want := []string{"2026-9-30", "2026-10-2", "2026-10-10"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dates()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
