package model

// TaskInstance is one scheduled occurrence of a timed task on one date.
type TaskInstance struct {
	// ID is unique and stable for the instance's lifetime.
	ID string `json:"id" yaml:"id" toml:"id" db:"id"`

	// Name is the display text.
	Name string `json:"name" yaml:"name" toml:"name" db:"name"`

	// StartTime and EndTime are "HH:MM" local times of day.
	StartTime string `json:"startTime" yaml:"start_time" toml:"start_time" db:"start_time"`
	EndTime   string `json:"endTime" yaml:"end_time" toml:"end_time" db:"end_time"`

	// Color is one of the Palette values.
	Color string `json:"color" yaml:"color" toml:"color" db:"color"`

	Completed bool `json:"completed" yaml:"completed" toml:"completed" db:"completed"`

	// IsRepeating marks instances generated from a Template.
	IsRepeating bool `json:"isRepeating" yaml:"is_repeating" toml:"is_repeating" db:"is_repeating"`

	// TemplateID is set iff IsRepeating and points back at the owning template.
	TemplateID string `json:"templateId,omitempty" yaml:"template_id,omitempty" toml:"template_id,omitempty" db:"template_id"`
}

// TaskFields are the user-editable attributes of a timed task.
type TaskFields struct {
	Name      string
	StartTime string
	EndTime   string
	Color     string
}

// Apply copies the editable fields onto the instance, leaving identity,
// completion and template linkage untouched.
func (f TaskFields) Apply(inst *TaskInstance) {
	inst.Name = f.Name
	inst.StartTime = f.StartTime
	inst.EndTime = f.EndTime
	inst.Color = f.Color
}

// Fields returns the editable attributes of the instance.
func (t TaskInstance) Fields() TaskFields {
	return TaskFields{
		Name:      t.Name,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		Color:     t.Color,
	}
}
