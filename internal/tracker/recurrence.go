package tracker

import (
	"slices"

	"github.com/nhle/habit-tracker/internal/dateutil"
	"github.com/nhle/habit-tracker/internal/model"
)

// Engine expands templates into per-date instances and keeps repeating
// tasks consistent across dates.
type Engine struct {
	templates *TemplateStore
	tasks     *TaskStore
	newID     IDFunc
}

// NewEngine wires an engine over the two stores it coordinates.
func NewEngine(templates *TemplateStore, tasks *TaskStore, newID IDFunc) *Engine {
	return &Engine{templates: templates, tasks: tasks, newID: newID}
}

// MatchesRule reports whether the template's rule selects the given date.
func MatchesRule(t model.Template, date string) bool {
	dow := dateutil.WeekdayOfKey(date)
	if dow < 0 {
		return false
	}

	switch t.RepeatType {
	case model.RepeatDaily:
		return true
	case model.RepeatWeekdays:
		return dow >= 1 && dow <= 5
	case model.RepeatWeekends:
		return dow == 0 || dow == 6
	case model.RepeatWeekly:
		return dow == dateutil.WeekdayOfKey(t.AnchorDate)
	case model.RepeatCustom:
		return slices.Contains(t.CustomDays, dow)
	default:
		return false
	}
}

// GenerateInstances materializes the template on every matching date of the
// window that does not already host one of its instances. Repeated calls
// over overlapping windows never duplicate. It returns the number created.
func (e *Engine) GenerateInstances(templateID string, window dateutil.Window) int {
	t, ok := e.templates.Get(templateID)
	if !ok {
		return 0
	}

	floor := anchorMonthStart(t)
	created := 0
	for _, date := range window.Dates() {
		if floor != "" && dateutil.Compare(date, floor) < 0 {
			continue
		}
		if !MatchesRule(t, date) || e.tasks.HasTemplate(date, templateID) {
			continue
		}
		e.tasks.Upsert(date, model.TaskInstance{
			ID:          e.newID(),
			Name:        t.Name,
			StartTime:   t.StartTime,
			EndTime:     t.EndTime,
			Color:       t.Color,
			Completed:   false,
			IsRepeating: true,
			TemplateID:  templateID,
		})
		created++
	}
	return created
}

// GenerateAll runs GenerateInstances for every template.
func (e *Engine) GenerateAll(window dateutil.Window) int {
	created := 0
	for _, t := range e.templates.All() {
		created += e.GenerateInstances(t.ID, window)
	}
	return created
}

// DeleteRecurring removes every instance of the template across all dates,
// then the template itself. It returns the number of instances removed.
func (e *Engine) DeleteRecurring(templateID string) int {
	removed := e.tasks.RemoveByTemplate(templateID)
	e.templates.Delete(templateID)
	return removed
}

// EditSingleInstance replaces the editable fields of one instance. The
// owning template and the other instances are left as they are.
func (e *Engine) EditSingleInstance(date, instanceID string, fields model.TaskFields) bool {
	inst, ok := e.tasks.Find(date, instanceID)
	if !ok {
		return false
	}
	fields.Apply(&inst)
	e.tasks.Upsert(date, inst)
	return true
}

// anchorMonthStart returns the first day of the anchor's month, the earliest
// date a template materializes on. Templates without a usable anchor have no floor.
func anchorMonthStart(t model.Template) string {
	y, m, _, err := dateutil.ParseDateKey(t.AnchorDate)
	if err != nil {
		return ""
	}
	return dateutil.DateKey(y, m, 1)
}
