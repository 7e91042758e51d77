package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	v, err := SchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"plan_runs", "plan_sessions", "plan_issues", "plan_priorities"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestOpenDB_FileDatabaseCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenDB(path)
	require.NoError(t, err, "reopening an up-to-date database")
	defer db.Close()
	v, err := SchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("STUDYPLANNER_DB", "/tmp/custom.db")
	assert.Equal(t, "/tmp/custom.db", DefaultPath())

	t.Setenv("STUDYPLANNER_DB", "")
	assert.Equal(t, "studyplanner.db", filepath.Base(DefaultPath()))
}

func insertRun(ctx context.Context, tx DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO plan_runs
		(id, created_at, start_date, outcome, iterations, max_iterations, pages_per_hour, max_hours_per_day, study_style)
		VALUES (?, '2025-03-01T00:00:00Z', '2025-03-01', 'accepted', 1, 3, 10, 4, 'balanced')`, id)
	return err
}

func countRuns(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM plan_runs`).Scan(&n))
	return n
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	db := openTestDB(t)
	uow := NewSQLiteUnitOfWork(db)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		return insertRun(ctx, tx, "r1")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countRuns(t, db))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	db := openTestDB(t)
	uow := NewSQLiteUnitOfWork(db)
	boom := errors.New("boom")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		require.NoError(t, insertRun(ctx, tx, "r1"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countRuns(t, db))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	db := openTestDB(t)
	uow := NewSQLiteUnitOfWork(db)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
			require.NoError(t, insertRun(ctx, tx, "r1"))
			panic("boom")
		})
	})
	assert.Equal(t, 0, countRuns(t, db))
}

func TestCascadeDelete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, insertRun(ctx, db, "r1"))
	_, err := db.Exec(`INSERT INTO plan_sessions (run_id, seq, date, course_id, topic, hours, type) VALUES ('r1', 0, '2025-03-01', 'math', 'Limits', 1, 'learning')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM plan_runs WHERE id = 'r1'`)
	require.NoError(t, err)
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM plan_sessions`).Scan(&n))
	assert.Zero(t, n)
}
