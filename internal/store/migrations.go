package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS templates (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL DEFAULT '',
	start_time  TEXT NOT NULL DEFAULT '',
	end_time    TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '',
	repeat_type TEXT NOT NULL CHECK(repeat_type IN ('daily', 'weekdays', 'weekends', 'weekly', 'custom')),
	custom_days TEXT NOT NULL DEFAULT 'null',
	anchor_date TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS task_instances (
	id           TEXT PRIMARY KEY,
	date_key     TEXT NOT NULL,
	position     INTEGER NOT NULL,
	name         TEXT NOT NULL DEFAULT '',
	start_time   TEXT NOT NULL DEFAULT '',
	end_time     TEXT NOT NULL DEFAULT '',
	color        TEXT NOT NULL DEFAULT '',
	completed    INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	is_repeating INTEGER NOT NULL DEFAULT 0 CHECK(is_repeating IN (0, 1)),
	template_id  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS general_tasks (
	id        TEXT PRIMARY KEY,
	position  INTEGER NOT NULL,
	name      TEXT NOT NULL,
	color     TEXT NOT NULL DEFAULT '',
	completed INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1))
);

CREATE INDEX IF NOT EXISTS idx_task_instances_date ON task_instances(date_key, position);
CREATE INDEX IF NOT EXISTS idx_task_instances_template ON task_instances(template_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
