package tracker

import (
	"slices"
	"sort"
	"strings"

	"github.com/nhle/habit-tracker/internal/dateutil"
	"github.com/nhle/habit-tracker/internal/model"
)

// TaskStore maps date keys to the ordered timed task instances of that date.
// Lists are always sorted by StartTime and no date key maps to an empty list.
type TaskStore struct {
	byDate map[string][]model.TaskInstance
}

// NewTaskStore builds a store from a persisted snapshot. Empty dates are
// dropped and every list is re-sorted, so a hand-edited snapshot still
// satisfies the store's ordering rules.
func NewTaskStore(snap model.TaskSnapshot) *TaskStore {
	s := &TaskStore{byDate: make(map[string][]model.TaskInstance, len(snap))}
	for date, list := range snap {
		if len(list) == 0 {
			continue
		}
		s.byDate[date] = slices.Clone(list)
		sortByStart(s.byDate[date])
	}
	return s
}

// Upsert inserts inst on date, or replaces the instance with the same ID,
// then re-sorts the date's list.
func (s *TaskStore) Upsert(date string, inst model.TaskInstance) {
	list := s.byDate[date]
	if i := indexOf(list, inst.ID); i >= 0 {
		list[i] = inst
	} else {
		list = append(list, inst)
	}
	sortByStart(list)
	s.byDate[date] = list
}

// Remove deletes one instance. The date key disappears with its last instance.
func (s *TaskStore) Remove(date, instanceID string) bool {
	list := s.byDate[date]
	i := indexOf(list, instanceID)
	if i < 0 {
		return false
	}
	list = slices.Delete(list, i, i+1)
	if len(list) == 0 {
		delete(s.byDate, date)
	} else {
		s.byDate[date] = list
	}
	return true
}

// ToggleCompletion flips Completed on one instance. Missing instances are ignored.
func (s *TaskStore) ToggleCompletion(date, instanceID string) bool {
	list := s.byDate[date]
	i := indexOf(list, instanceID)
	if i < 0 {
		return false
	}
	list[i].Completed = !list[i].Completed
	return true
}

// RemoveByTemplate deletes every instance linked to templateID on every
// date and returns how many were removed.
func (s *TaskStore) RemoveByTemplate(templateID string) int {
	if templateID == "" {
		return 0
	}
	removed := 0
	for date, list := range s.byDate {
		kept := list[:0]
		for _, inst := range list {
			if inst.TemplateID == templateID {
				removed++
				continue
			}
			kept = append(kept, inst)
		}
		if len(kept) == 0 {
			delete(s.byDate, date)
		} else {
			s.byDate[date] = kept
		}
	}
	return removed
}

// InstancesOn returns a copy of the date's instances in display order.
func (s *TaskStore) InstancesOn(date string) []model.TaskInstance {
	list := s.byDate[date]
	out := make([]model.TaskInstance, len(list))
	copy(out, list)
	return out
}

// Find looks up one instance on a date.
func (s *TaskStore) Find(date, instanceID string) (model.TaskInstance, bool) {
	list := s.byDate[date]
	if i := indexOf(list, instanceID); i >= 0 {
		return list[i], true
	}
	return model.TaskInstance{}, false
}

// HasTemplate reports whether the date already hosts an instance of templateID.
func (s *TaskStore) HasTemplate(date, templateID string) bool {
	return slices.ContainsFunc(s.byDate[date], func(inst model.TaskInstance) bool {
		return inst.TemplateID == templateID
	})
}

// Dates returns every date key with at least one instance, chronologically.
func (s *TaskStore) Dates() []string {
	dates := make([]string, 0, len(s.byDate))
	for d := range s.byDate {
		dates = append(dates, d)
	}
	slices.SortFunc(dates, dateutil.Compare)
	return dates
}

// ColorsOn returns up to max distinct instance colors of a date, in list order.
func (s *TaskStore) ColorsOn(date string, max int) []string {
	var colors []string
	for _, inst := range s.byDate[date] {
		if len(colors) == max {
			break
		}
		if !slices.Contains(colors, inst.Color) {
			colors = append(colors, inst.Color)
		}
	}
	return colors
}

// Len returns the total number of instances across all dates.
func (s *TaskStore) Len() int {
	n := 0
	for _, list := range s.byDate {
		n += len(list)
	}
	return n
}

// Snapshot returns a deep copy suitable for persistence.
func (s *TaskStore) Snapshot() model.TaskSnapshot {
	snap := make(model.TaskSnapshot, len(s.byDate))
	for date, list := range s.byDate {
		snap[date] = slices.Clone(list)
	}
	return snap
}

func indexOf(list []model.TaskInstance, id string) int {
	return slices.IndexFunc(list, func(inst model.TaskInstance) bool {
		return inst.ID == id
	})
}

// sortByStart orders by "HH:MM" string compare, keeping insertion order on ties.
func sortByStart(list []model.TaskInstance) {
	sort.SliceStable(list, func(i, j int) bool {
		return strings.Compare(list[i].StartTime, list[j].StartTime) < 0
	})
}
