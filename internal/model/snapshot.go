package model

// TaskSnapshot is the persisted form of the task store: date key to the
// date's instances in display order.
type TaskSnapshot map[string][]TaskInstance

// TemplateSnapshot is the persisted form of the template store.
type TemplateSnapshot map[string]Template

// GeneralSnapshot is the persisted general task list in insertion order.
type GeneralSnapshot []GeneralTask

// Snapshots bundles the three independent persisted records.
type Snapshots struct {
	Tasks     TaskSnapshot
	Templates TemplateSnapshot
	General   GeneralSnapshot
}
