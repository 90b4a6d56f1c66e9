package model

import "slices"

// RepeatType names a recurrence rule.
type RepeatType string

const (
	// RepeatNone is only a form choice; it never appears on a stored template.
	RepeatNone     RepeatType = "none"
	RepeatDaily    RepeatType = "daily"
	RepeatWeekdays RepeatType = "weekdays"
	RepeatWeekends RepeatType = "weekends"
	RepeatWeekly   RepeatType = "weekly"
	RepeatCustom   RepeatType = "custom"
)

// RepeatTypes lists the recurring choices in the order the form offers them.
var RepeatTypes = []RepeatType{
	RepeatDaily, RepeatWeekdays, RepeatWeekends, RepeatWeekly, RepeatCustom,
}

// Label is the badge text shown next to a repeating task.
func (r RepeatType) Label() string {
	switch r {
	case RepeatNone:
		return "None"
	case RepeatDaily:
		return "Daily"
	case RepeatWeekdays:
		return "Weekdays"
	case RepeatWeekends:
		return "Weekends"
	case RepeatWeekly:
		return "Weekly"
	case RepeatCustom:
		return "Custom"
	default:
		return string(r)
	}
}

// Recurring reports whether r is one of the template repeat types.
func (r RepeatType) Recurring() bool {
	return slices.Contains(RepeatTypes, r)
}

// Template is the recurrence rule that generates repeating task instances.
type Template struct {
	// ID doubles as the TemplateID carried by generated instances.
	ID string `json:"id" yaml:"id" toml:"id"`

	Name      string `json:"name" yaml:"name" toml:"name"`
	StartTime string `json:"startTime" yaml:"start_time" toml:"start_time"`
	EndTime   string `json:"endTime" yaml:"end_time" toml:"end_time"`
	Color     string `json:"color" yaml:"color" toml:"color"`

	RepeatType RepeatType `json:"repeatType" yaml:"repeat_type" toml:"repeat_type"`

	// CustomDays holds weekday indices (0 = Sunday) and is nil unless
	// RepeatType is RepeatCustom.
	CustomDays []int `json:"customDays" yaml:"custom_days" toml:"custom_days"`

	// AnchorDate is the date key the template was created from.
	AnchorDate string `json:"anchorDate" yaml:"anchor_date" toml:"anchor_date"`
}

// Fields returns the attributes copied into every generated instance.
func (t Template) Fields() TaskFields {
	return TaskFields{
		Name:      t.Name,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		Color:     t.Color,
	}
}
