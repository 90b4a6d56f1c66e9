package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/habit-tracker/internal/model"
)

// memoryDSN opens a private in-memory database.
const memoryDSN = ":memory:"

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations. The parent
// directory of a file-backed database is created if missing.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != memoryDSN {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// One connection: every :memory: connection is its own database, and
	// the tracker writes from a single goroutine anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the highest applied migration.
func (s *SQLiteStore) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.GetContext(ctx, &v, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// instanceRow is the task_instances column layout.
type instanceRow struct {
	ID          string `db:"id"`
	DateKey     string `db:"date_key"`
	Position    int    `db:"position"`
	Name        string `db:"name"`
	StartTime   string `db:"start_time"`
	EndTime     string `db:"end_time"`
	Color       string `db:"color"`
	Completed   int    `db:"completed"`
	IsRepeating int    `db:"is_repeating"`
	TemplateID  string `db:"template_id"`
}

// LoadTasks reads every instance grouped by date in stored order.
func (s *SQLiteStore) LoadTasks(ctx context.Context) (model.TaskSnapshot, error) {
	var rows []instanceRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, date_key, position, name, start_time, end_time,
			color, completed, is_repeating, template_id
		FROM task_instances
		ORDER BY date_key, position`)
	if err != nil {
		return nil, fmt.Errorf("querying task instances: %w", err)
	}

	snap := make(model.TaskSnapshot)
	for _, r := range rows {
		snap[r.DateKey] = append(snap[r.DateKey], model.TaskInstance{
			ID:          r.ID,
			Name:        r.Name,
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
			Color:       r.Color,
			Completed:   r.Completed != 0,
			IsRepeating: r.IsRepeating != 0,
			TemplateID:  r.TemplateID,
		})
	}
	return snap, nil
}

// SaveTasks replaces every stored instance with snap.
func (s *SQLiteStore) SaveTasks(ctx context.Context, snap model.TaskSnapshot) error {
	return s.replace(ctx, "task_instances", `
		INSERT INTO task_instances (
			id, date_key, position, name, start_time, end_time,
			color, completed, is_repeating, template_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		func(stmt *sqlx.Stmt) error {
			for date, list := range snap {
				for pos, inst := range list {
					_, err := stmt.ExecContext(ctx,
						inst.ID, date, pos, inst.Name, inst.StartTime, inst.EndTime,
						inst.Color, boolToInt(inst.Completed), boolToInt(inst.IsRepeating), inst.TemplateID,
					)
					if err != nil {
						return fmt.Errorf("inserting instance %s on %s: %w", inst.ID, date, err)
					}
				}
			}
			return nil
		})
}

// templateRow is the templates column layout.
type templateRow struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	StartTime  string `db:"start_time"`
	EndTime    string `db:"end_time"`
	Color      string `db:"color"`
	RepeatType string `db:"repeat_type"`
	CustomDays string `db:"custom_days"`
	AnchorDate string `db:"anchor_date"`
}

// LoadTemplates reads every template keyed by ID.
func (s *SQLiteStore) LoadTemplates(ctx context.Context) (model.TemplateSnapshot, error) {
	var rows []templateRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, start_time, end_time, color, repeat_type, custom_days, anchor_date
		FROM templates`)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}

	snap := make(model.TemplateSnapshot, len(rows))
	for _, r := range rows {
		var days []int
		if r.CustomDays != "" {
			if err := json.Unmarshal([]byte(r.CustomDays), &days); err != nil {
				return nil, fmt.Errorf("unmarshaling custom_days for template %s: %w", r.ID, err)
			}
		}
		snap[r.ID] = model.Template{
			ID:         r.ID,
			Name:       r.Name,
			StartTime:  r.StartTime,
			EndTime:    r.EndTime,
			Color:      r.Color,
			RepeatType: model.RepeatType(r.RepeatType),
			CustomDays: days,
			AnchorDate: r.AnchorDate,
		}
	}
	return snap, nil
}

// SaveTemplates replaces every stored template with snap.
func (s *SQLiteStore) SaveTemplates(ctx context.Context, snap model.TemplateSnapshot) error {
	return s.replace(ctx, "templates", `
		INSERT INTO templates (
			id, name, start_time, end_time, color, repeat_type, custom_days, anchor_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		func(stmt *sqlx.Stmt) error {
			for id, t := range snap {
				days, err := json.Marshal(t.CustomDays)
				if err != nil {
					return fmt.Errorf("marshaling custom_days for template %s: %w", id, err)
				}
				_, err = stmt.ExecContext(ctx,
					id, t.Name, t.StartTime, t.EndTime, t.Color,
					string(t.RepeatType), string(days), t.AnchorDate,
				)
				if err != nil {
					return fmt.Errorf("inserting template %s: %w", id, err)
				}
			}
			return nil
		})
}

// generalRow is the general_tasks column layout.
type generalRow struct {
	ID        string `db:"id"`
	Position  int    `db:"position"`
	Name      string `db:"name"`
	Color     string `db:"color"`
	Completed int    `db:"completed"`
}

// LoadGeneral reads the general task list in insertion order.
func (s *SQLiteStore) LoadGeneral(ctx context.Context) (model.GeneralSnapshot, error) {
	var rows []generalRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT id, position, name, color, completed FROM general_tasks ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying general tasks: %w", err)
	}

	snap := make(model.GeneralSnapshot, 0, len(rows))
	for _, r := range rows {
		snap = append(snap, model.GeneralTask{
			ID:        r.ID,
			Name:      r.Name,
			Color:     r.Color,
			Completed: r.Completed != 0,
		})
	}
	return snap, nil
}

// SaveGeneral replaces the stored general task list with snap.
func (s *SQLiteStore) SaveGeneral(ctx context.Context, snap model.GeneralSnapshot) error {
	return s.replace(ctx, "general_tasks",
		"INSERT INTO general_tasks (id, position, name, color, completed) VALUES (?, ?, ?, ?, ?)",
		func(stmt *sqlx.Stmt) error {
			for pos, g := range snap {
				_, err := stmt.ExecContext(ctx, g.ID, pos, g.Name, g.Color, boolToInt(g.Completed))
				if err != nil {
					return fmt.Errorf("inserting general task %s: %w", g.ID, err)
				}
			}
			return nil
		})
}

// GetSetting returns the stored value for key and whether it exists.
func (s *SQLiteStore) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting inserts or updates a setting.
func (s *SQLiteStore) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// replace clears table and refills it through insert inside one transaction.
func (s *SQLiteStore) replace(
	ctx context.Context,
	table, insert string,
	fill func(stmt *sqlx.Stmt) error,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}

	stmt, err := tx.PreparexContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("preparing %s insert: %w", table, err)
	}
	defer stmt.Close()

	if err := fill(stmt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", table, err)
	}
	return nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
