package store

import (
	"context"

	"github.com/nhle/habit-tracker/internal/model"
)

// Setting keys stored in the settings table.
const (
	SettingTheme = "theme"
)

// Store defines the persistence interface for the three tracker records
// and the UI settings. Each Save replaces the record's full contents.
type Store interface {
	// === Timed task instances ===

	LoadTasks(ctx context.Context) (model.TaskSnapshot, error)
	SaveTasks(ctx context.Context, snap model.TaskSnapshot) error

	// === Recurrence templates ===

	LoadTemplates(ctx context.Context) (model.TemplateSnapshot, error)
	SaveTemplates(ctx context.Context, snap model.TemplateSnapshot) error

	// === General tasks ===

	LoadGeneral(ctx context.Context) (model.GeneralSnapshot, error)
	SaveGeneral(ctx context.Context, snap model.GeneralSnapshot) error

	// === Settings ===

	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error

	Close() error
}
