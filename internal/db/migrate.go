package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order; PRAGMA user_version records how many
// have run so each statement executes once per database.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plan_runs (
		id                TEXT PRIMARY KEY,
		created_at        TEXT NOT NULL,
		start_date        TEXT NOT NULL,
		outcome           TEXT NOT NULL CHECK(outcome IN ('accepted','exhausted')),
		iterations        INTEGER NOT NULL,
		max_iterations    INTEGER NOT NULL,
		pages_per_hour    REAL NOT NULL,
		max_hours_per_day REAL NOT NULL,
		study_style       TEXT NOT NULL,
		rest_days         TEXT NOT NULL DEFAULT '',
		input_json        TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS plan_sessions (
		run_id    TEXT NOT NULL REFERENCES plan_runs(id) ON DELETE CASCADE,
		seq       INTEGER NOT NULL,
		date      TEXT NOT NULL,
		course_id TEXT NOT NULL,
		topic     TEXT NOT NULL,
		hours     REAL NOT NULL CHECK(hours > 0),
		type      TEXT NOT NULL CHECK(type IN ('learning','review_1','review_2')),
		notes     TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS plan_issues (
		run_id    TEXT NOT NULL REFERENCES plan_runs(id) ON DELETE CASCADE,
		seq       INTEGER NOT NULL,
		severity  TEXT NOT NULL CHECK(severity IN ('error','warning')),
		code      TEXT NOT NULL,
		message   TEXT NOT NULL,
		course_id TEXT,
		topic     TEXT,
		date      TEXT,
		PRIMARY KEY (run_id, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS plan_priorities (
		run_id    TEXT NOT NULL REFERENCES plan_runs(id) ON DELETE CASCADE,
		rank      INTEGER NOT NULL,
		course_id TEXT NOT NULL,
		score     REAL NOT NULL,
		exam_date TEXT NOT NULL,
		PRIMARY KEY (run_id, rank)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_runs_created ON plan_runs(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_sessions_date ON plan_sessions(run_id, date)`,
}

// Migrate brings the schema up to the latest version.
func Migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	for i := version; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
		if _, err := db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			return fmt.Errorf("recording schema version %d: %w", i+1, err)
		}
	}
	return nil
}

// SchemaVersion reports the number of applied migrations.
func SchemaVersion(db *sql.DB) (int, error) {
	var v int
	err := db.QueryRow(`PRAGMA user_version`).Scan(&v)
	return v, err
}
