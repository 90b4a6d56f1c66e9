package taskform

import (
	"strings"
	"testing"

	"github.com/nhle/habit-tracker/internal/model"
)

func TestSubmitCreate(t *testing.T) {
	m := New(80, 24)
	m.StartCreate("2026-10-14")
	m.fb.name = "  Gym "
	m.fb.repeat = model.RepeatCustom
	m.fb.customDays = []int{1, 3}

	msg, ok := m.handleSubmit()().(TaskSubmittedMsg)
	if !ok {
		t.Fatal("expected TaskSubmittedMsg")
	}
	if msg.ID != "" || msg.Date != "2026-10-14" {
		t.Errorf("unexpected target %q on %q", msg.ID, msg.Date)
	}
	if msg.Fields.Name != "Gym" || msg.Fields.StartTime != "09:00" || msg.Fields.Color != model.DefaultColor() {
		t.Errorf("unexpected fields %+v", msg.Fields)
	}
	if msg.Repeat.Type != model.RepeatCustom || len(msg.Repeat.CustomDays) != 2 {
		t.Errorf("unexpected repeat %+v", msg.Repeat)
	}
}

func TestSubmitCreateNoRepeat(t *testing.T) {
	m := New(80, 24)
	m.StartCreate("2026-10-14")
	m.fb.name = "Dentist"
	m.fb.customDays = []int{2}

	msg := m.handleSubmit()().(TaskSubmittedMsg)
	if msg.Repeat.Type != "" || msg.Repeat.CustomDays != nil {
		t.Errorf("expected no repeat, got %+v", msg.Repeat)
	}
}

func TestSubmitEditIgnoresRepeat(t *testing.T) {
	m := New(80, 24)
	inst := model.TaskInstance{ID: "i1", Name: "Read", StartTime: "21:00", EndTime: "21:30", Color: "#123456", IsRepeating: true, TemplateID: "t1"}
	m.StartEdit("2026-10-14", inst, "Daily")

	if !m.Editing() {
		t.Fatal("expected edit mode")
	}
	if m.fb.color != model.DefaultColor() {
		t.Errorf("off-palette color should reset to default, got %q", m.fb.color)
	}
	m.fb.repeat = model.RepeatWeekly

	msg := m.handleSubmit()().(TaskSubmittedMsg)
	if msg.ID != "i1" || msg.Fields.Name != "Read" {
		t.Errorf("unexpected edit message %+v", msg)
	}
	if msg.Repeat.Type != "" {
		t.Errorf("edit must not carry a repeat choice, got %+v", msg.Repeat)
	}
	if !strings.Contains(m.View(), "this occurrence only") {
		t.Errorf("expected local edit note in view:\n%s", m.View())
	}
}

func TestValidateEnd(t *testing.T) {
	m := New(80, 24)
	m.StartCreate("2026-10-14")
	m.fb.start = "9:30"

	tests := []struct {
		end     string
		wantErr bool
	}{
		{"10:00", false},
		{"09:30", false},
		{"9:00", true},
		{"25:00", true},
		{"", true},
	}
	for _, tt := range tests {
		if err := m.validateEnd(tt.end); (err != nil) != tt.wantErr {
			t.Errorf("validateEnd(%q) error = %v, wantErr %v", tt.end, err, tt.wantErr)
		}
	}
}

func TestValidateRequired(t *testing.T) {
	if err := validateRequired("Name")("   "); err == nil {
		t.Error("expected blank name to fail")
	}
	if err := validateRequired("Name")("x"); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}
