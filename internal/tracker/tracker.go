// Package tracker holds the in-memory habit tracker: the task, template and
// general stores, the recurrence engine, and the Tracker session that ties
// them to persistence.
//
// Nothing in this package locks. A Tracker is driven from one goroutine at a
// time (the Bubble Tea update loop or a CLI command).
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/habit-tracker/internal/dateutil"
	"github.com/nhle/habit-tracker/internal/model"
)

// ErrNoCustomDays is returned when a custom repeat selects no weekday.
var ErrNoCustomDays = errors.New("custom repeat needs at least one day")

// Persister stores the three tracker records. Each Save replaces the full
// record.
type Persister interface {
	LoadTasks(ctx context.Context) (model.TaskSnapshot, error)
	SaveTasks(ctx context.Context, snap model.TaskSnapshot) error
	LoadTemplates(ctx context.Context) (model.TemplateSnapshot, error)
	SaveTemplates(ctx context.Context, snap model.TemplateSnapshot) error
	LoadGeneral(ctx context.Context) (model.GeneralSnapshot, error)
	SaveGeneral(ctx context.Context, snap model.GeneralSnapshot) error
}

// RepeatChoice is the recurrence picked on the task form.
type RepeatChoice struct {
	Type       model.RepeatType
	CustomDays []int
}

// Options configures a Tracker. Zero values select the defaults: no
// persistence, time.Now, random UUIDs and a no-op logger.
type Options struct {
	Persister Persister
	Clock     Clock
	NewID     IDFunc
	Logger    *zap.Logger
}

// Tracker is one session over the habit data. Every mutating method saves
// the affected records before it returns.
type Tracker struct {
	persist   Persister
	clock     Clock
	newID     IDFunc
	log       *zap.Logger
	tasks     *TaskStore
	templates *TemplateStore
	general   *GeneralStore
	engine    *Engine
}

// New creates an empty Tracker. Call Load to read persisted state.
func New(opts Options) *Tracker {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = NewUUID
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	t := &Tracker{
		persist: opts.Persister,
		clock:   opts.Clock,
		newID:   opts.NewID,
		log:     opts.Logger,
	}
	t.reset(model.Snapshots{})
	return t
}

func (t *Tracker) reset(snaps model.Snapshots) {
	t.tasks = NewTaskStore(snaps.Tasks)
	t.templates = NewTemplateStore(snaps.Templates, t.newID)
	t.general = NewGeneralStore(snaps.General, t.newID)
	t.engine = NewEngine(t.templates, t.tasks, t.newID)
}

// Load reads the three records once. A record that cannot be read is
// logged and replaced by an empty store rather than failing the session.
func (t *Tracker) Load(ctx context.Context) {
	var snaps model.Snapshots
	if t.persist == nil {
		t.reset(snaps)
		return
	}

	tasks, err := t.persist.LoadTasks(ctx)
	if err != nil {
		t.log.Warn("task record unreadable, starting empty", zap.Error(err))
		tasks = nil
	}
	templates, err := t.persist.LoadTemplates(ctx)
	if err != nil {
		t.log.Warn("template record unreadable, starting empty", zap.Error(err))
		templates = nil
	}
	general, err := t.persist.LoadGeneral(ctx)
	if err != nil {
		t.log.Warn("general task record unreadable, starting empty", zap.Error(err))
		general = nil
	}

	snaps = model.Snapshots{Tasks: tasks, Templates: templates, General: general}
	t.reset(snaps)
	t.log.Info("tracker loaded",
		zap.Int("instances", t.tasks.Len()),
		zap.Int("templates", t.templates.Len()),
		zap.Int("general", len(general)),
	)
}

// Today returns today's date key according to the tracker clock.
func (t *Tracker) Today() string {
	return dateutil.KeyOf(t.clock())
}

// AddTask creates a timed task on date. RepeatNone adds one instance;
// any other choice creates a template anchored on date and materializes it
// across date's month. It returns the new instance or template ID.
func (t *Tracker) AddTask(
	ctx context.Context,
	date string,
	fields model.TaskFields,
	repeat RepeatChoice,
) (string, error) {
	y, m, d, err := dateutil.ParseDateKey(date)
	if err != nil {
		return "", err
	}
	date = dateutil.DateKey(y, m, d)
	fields = normalizeFields(fields)

	if repeat.Type == "" || repeat.Type == model.RepeatNone {
		inst := model.TaskInstance{ID: t.newID()}
		fields.Apply(&inst)
		t.tasks.Upsert(date, inst)
		t.log.Debug("task added", zap.String("date", date), zap.String("id", inst.ID))
		return inst.ID, t.saveTasks(ctx)
	}

	if !repeat.Type.Recurring() {
		return "", fmt.Errorf("unknown repeat type %q", repeat.Type)
	}
	if repeat.Type == model.RepeatCustom && len(normalizeDays(repeat.CustomDays)) == 0 {
		return "", ErrNoCustomDays
	}

	tmpl := model.Template{
		Name:       fields.Name,
		StartTime:  fields.StartTime,
		EndTime:    fields.EndTime,
		Color:      fields.Color,
		RepeatType: repeat.Type,
		CustomDays: repeat.CustomDays,
		AnchorDate: date,
	}
	id := t.templates.Create(tmpl)
	created := t.engine.GenerateInstances(id, dateutil.MonthWindow(y, m))
	t.log.Debug("recurring task added",
		zap.String("template", id),
		zap.String("repeat", string(repeat.Type)),
		zap.Int("instances", created),
	)

	return id, errors.Join(t.saveTemplates(ctx), t.saveTasks(ctx))
}

// EditTask updates one instance's fields. Repeating instances are edited
// in isolation; their template is not touched. A missing instance is a no-op.
func (t *Tracker) EditTask(ctx context.Context, date, id string, fields model.TaskFields) (bool, error) {
	if !t.engine.EditSingleInstance(date, id, normalizeFields(fields)) {
		return false, nil
	}
	return true, t.saveTasks(ctx)
}

// DeleteTask removes an instance. Deleting a repeating instance removes its
// template and every instance of it on every date. A missing instance is a no-op.
func (t *Tracker) DeleteTask(ctx context.Context, date, id string) (bool, error) {
	inst, ok := t.tasks.Find(date, id)
	if !ok {
		return false, nil
	}

	if inst.IsRepeating && inst.TemplateID != "" {
		removed := t.engine.DeleteRecurring(inst.TemplateID)
		t.log.Debug("recurring task deleted",
			zap.String("template", inst.TemplateID),
			zap.Int("instances", removed),
		)
		return true, errors.Join(t.saveTasks(ctx), t.saveTemplates(ctx))
	}

	t.tasks.Remove(date, id)
	return true, t.saveTasks(ctx)
}

// ToggleTask flips an instance's completion. A missing instance is a no-op.
func (t *Tracker) ToggleTask(ctx context.Context, date, id string) (bool, error) {
	if !t.tasks.ToggleCompletion(date, id) {
		return false, nil
	}
	return true, t.saveTasks(ctx)
}

// EnsureMonth materializes every template over the month so a newly
// visible month shows its repeating tasks. It saves only when something
// was created.
func (t *Tracker) EnsureMonth(ctx context.Context, year, month int) (int, error) {
	created := t.engine.GenerateAll(dateutil.MonthWindow(year, month))
	if created == 0 {
		return 0, nil
	}
	t.log.Debug("month materialized",
		zap.Int("year", year), zap.Int("month", month), zap.Int("instances", created))
	return created, t.saveTasks(ctx)
}

// AddGeneral appends a general task. Blank names are ignored.
func (t *Tracker) AddGeneral(ctx context.Context, name, color string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	id := t.general.Add(name, colorOrDefault(color))
	return id, t.saveGeneral(ctx)
}

// EditGeneral renames and recolors a general task. Blank names and missing
// tasks are ignored.
func (t *Tracker) EditGeneral(ctx context.Context, id, name, color string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || !t.general.Update(id, name, colorOrDefault(color)) {
		return false, nil
	}
	return true, t.saveGeneral(ctx)
}

// ToggleGeneral flips a general task's completion.
func (t *Tracker) ToggleGeneral(ctx context.Context, id string) (bool, error) {
	if !t.general.Toggle(id) {
		return false, nil
	}
	return true, t.saveGeneral(ctx)
}

// DeleteGeneral removes a general task.
func (t *Tracker) DeleteGeneral(ctx context.Context, id string) (bool, error) {
	if !t.general.Remove(id) {
		return false, nil
	}
	return true, t.saveGeneral(ctx)
}

// InstancesOn returns the date's instances in display order.
func (t *Tracker) InstancesOn(date string) []model.TaskInstance {
	return t.tasks.InstancesOn(date)
}

// Instance looks up one instance.
func (t *Tracker) Instance(date, id string) (model.TaskInstance, bool) {
	return t.tasks.Find(date, id)
}

// Template looks up a template.
func (t *Tracker) Template(id string) (model.Template, bool) {
	return t.templates.Get(id)
}

// RepeatLabel returns the badge label for an instance's template, or "" when
// the template is unknown.
func (t *Tracker) RepeatLabel(templateID string) string {
	tmpl, ok := t.templates.Get(templateID)
	if !ok {
		return ""
	}
	return tmpl.RepeatType.Label()
}

// CalendarDots returns up to four distinct colors for a calendar cell.
func (t *Tracker) CalendarDots(date string) []string {
	return t.tasks.ColorsOn(date, 4)
}

// General returns the general task list.
func (t *Tracker) General() []model.GeneralTask {
	return t.general.All()
}

// GeneralTask looks up a general task.
func (t *Tracker) GeneralTask(id string) (model.GeneralTask, bool) {
	return t.general.Get(id)
}

// Snapshots returns copies of the three records.
func (t *Tracker) Snapshots() model.Snapshots {
	return model.Snapshots{
		Tasks:     t.tasks.Snapshot(),
		Templates: t.templates.Snapshot(),
		General:   t.general.Snapshot(),
	}
}

// Replace swaps the whole state for snaps and saves all three records.
func (t *Tracker) Replace(ctx context.Context, snaps model.Snapshots) error {
	t.reset(snaps)
	return t.saveAll(ctx)
}

// Merge adds the records of snaps whose IDs are not already present and
// saves all three records. Instances merge per date and never duplicate a
// template on a date.
func (t *Tracker) Merge(ctx context.Context, snaps model.Snapshots) error {
	for id, tmpl := range snaps.Templates {
		if _, ok := t.templates.Get(id); !ok {
			tmpl.ID = id
			t.templates.byID[id] = tmpl
		}
	}
	for date, list := range snaps.Tasks {
		for _, inst := range list {
			if _, ok := t.tasks.Find(date, inst.ID); ok {
				continue
			}
			if inst.TemplateID != "" && t.tasks.HasTemplate(date, inst.TemplateID) {
				continue
			}
			t.tasks.Upsert(date, inst)
		}
	}
	for _, g := range snaps.General {
		if _, ok := t.general.Get(g.ID); !ok {
			t.general.tasks = append(t.general.tasks, g)
		}
	}
	return t.saveAll(ctx)
}

func (t *Tracker) saveAll(ctx context.Context) error {
	return errors.Join(t.saveTemplates(ctx), t.saveTasks(ctx), t.saveGeneral(ctx))
}

func (t *Tracker) saveTasks(ctx context.Context) error {
	if t.persist == nil {
		return nil
	}
	if err := t.persist.SaveTasks(ctx, t.tasks.Snapshot()); err != nil {
		t.log.Error("saving tasks", zap.Error(err))
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

func (t *Tracker) saveTemplates(ctx context.Context) error {
	if t.persist == nil {
		return nil
	}
	if err := t.persist.SaveTemplates(ctx, t.templates.Snapshot()); err != nil {
		t.log.Error("saving templates", zap.Error(err))
		return fmt.Errorf("saving templates: %w", err)
	}
	return nil
}

func (t *Tracker) saveGeneral(ctx context.Context) error {
	if t.persist == nil {
		return nil
	}
	if err := t.persist.SaveGeneral(ctx, t.general.Snapshot()); err != nil {
		t.log.Error("saving general tasks", zap.Error(err))
		return fmt.Errorf("saving general tasks: %w", err)
	}
	return nil
}

func normalizeFields(f model.TaskFields) model.TaskFields {
	f.Name = strings.TrimSpace(f.Name)
	f.StartTime = strings.TrimSpace(f.StartTime)
	f.EndTime = strings.TrimSpace(f.EndTime)
	f.Color = colorOrDefault(f.Color)
	return f
}

func colorOrDefault(color string) string {
	if color == "" {
		return model.DefaultColor()
	}
	return color
}
