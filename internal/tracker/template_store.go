package tracker

import (
	"maps"
	"slices"

	"github.com/nhle/habit-tracker/internal/model"
)

// TemplateStore holds recurrence templates keyed by ID.
type TemplateStore struct {
	byID  map[string]model.Template
	newID IDFunc
}

// NewTemplateStore builds a store from a persisted snapshot.
func NewTemplateStore(snap model.TemplateSnapshot, newID IDFunc) *TemplateStore {
	s := &TemplateStore{byID: make(map[string]model.Template, len(snap)), newID: newID}
	for id, t := range snap {
		t.ID = id
		s.byID[id] = t
	}
	return s
}

// Create allocates an ID for t, stores it and returns the ID.
func (s *TemplateStore) Create(t model.Template) string {
	t.ID = s.newID()
	if t.RepeatType != model.RepeatCustom {
		t.CustomDays = nil
	} else {
		t.CustomDays = normalizeDays(t.CustomDays)
	}
	s.byID[t.ID] = t
	return t.ID
}

// Delete removes the template only; instances are the caller's concern.
func (s *TemplateStore) Delete(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	return true
}

// Get returns the template with the given ID.
func (s *TemplateStore) Get(id string) (model.Template, bool) {
	t, ok := s.byID[id]
	return t, ok
}

// All returns every template ordered by ID.
func (s *TemplateStore) All() []model.Template {
	ids := slices.Sorted(maps.Keys(s.byID))
	out := make([]model.Template, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the number of templates.
func (s *TemplateStore) Len() int {
	return len(s.byID)
}

// Snapshot returns a copy suitable for persistence.
func (s *TemplateStore) Snapshot() model.TemplateSnapshot {
	snap := make(model.TemplateSnapshot, len(s.byID))
	for id, t := range s.byID {
		t.CustomDays = slices.Clone(t.CustomDays)
		snap[id] = t
	}
	return snap
}

// normalizeDays sorts weekday indices, dropping duplicates and values
// outside 0..6. The result is never nil so a custom template with no days
// stays distinguishable from a non-custom one.
func normalizeDays(days []int) []int {
	out := []int{}
	for _, d := range days {
		if d < 0 || d > 6 || slices.Contains(out, d) {
			continue
		}
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}
