package tracker

import (
	"slices"

	"github.com/nhle/habit-tracker/internal/model"
)

// GeneralStore is the flat, insertion-ordered list of untimed tasks.
type GeneralStore struct {
	tasks []model.GeneralTask
	newID IDFunc
}

// NewGeneralStore builds a store from a persisted snapshot.
func NewGeneralStore(snap model.GeneralSnapshot, newID IDFunc) *GeneralStore {
	return &GeneralStore{tasks: slices.Clone(snap), newID: newID}
}

// Add appends a new open task and returns its ID.
func (s *GeneralStore) Add(name, color string) string {
	id := s.newID()
	s.tasks = append(s.tasks, model.GeneralTask{ID: id, Name: name, Color: color})
	return id
}

// Update renames and recolors a task in place.
func (s *GeneralStore) Update(id, name, color string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Name = name
	s.tasks[i].Color = color
	return true
}

// Toggle flips Completed on a task.
func (s *GeneralStore) Toggle(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return true
}

// Remove deletes a task.
func (s *GeneralStore) Remove(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return true
}

// Get looks a task up by ID.
func (s *GeneralStore) Get(id string) (model.GeneralTask, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.GeneralTask{}, false
}

// All returns a copy of the list in insertion order.
func (s *GeneralStore) All() []model.GeneralTask {
	out := make([]model.GeneralTask, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Snapshot returns a copy suitable for persistence.
func (s *GeneralStore) Snapshot() model.GeneralSnapshot {
	return model.GeneralSnapshot(s.All())
}

func (s *GeneralStore) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.GeneralTask) bool { return t.ID == id })
}
