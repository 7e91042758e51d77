package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/domain"
)

// SQLitePlanRunRepo implements PlanRunRepo. It stores the run header only;
// sessions, issues and priorities live in their own repositories.
type SQLitePlanRunRepo struct {
	db db.DBTX
}

func NewSQLitePlanRunRepo(conn db.DBTX) *SQLitePlanRunRepo {
	return &SQLitePlanRunRepo{db: conn}
}

const runColumns = `id, created_at, start_date, outcome, iterations, max_iterations,
	pages_per_hour, max_hours_per_day, study_style, rest_days, input_json`

func (r *SQLitePlanRunRepo) Create(ctx context.Context, run *domain.PlanRun) error {
	query := `INSERT INTO plan_runs (` + runColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		formatTimestamp(run.CreatedAt),
		domain.FormatDate(run.StartDate),
		string(run.Outcome),
		run.Iterations,
		run.MaxIterations,
		run.PagesPerHour,
		run.Preferences.MaxHoursPerDay,
		string(run.Preferences.StudyStyle),
		strings.Join(run.Preferences.RestDays.Markers(), ","),
		run.InputJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting plan run: %w", err)
	}
	return nil
}

func (r *SQLitePlanRunRepo) GetByID(ctx context.Context, id string) (*domain.PlanRun, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM plan_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning plan run: %w", err)
	}
	return run, nil
}

// List returns the newest runs first with their aggregate counts. A
// non-positive limit returns every run.
func (r *SQLitePlanRunRepo) List(ctx context.Context, limit int) ([]*domain.RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT r.id, r.created_at, r.start_date, r.outcome, r.iterations, r.max_iterations,
			r.pages_per_hour, r.max_hours_per_day, r.study_style, r.rest_days, r.input_json,
			(SELECT COUNT(*) FROM plan_sessions s WHERE s.run_id = r.id),
			(SELECT COALESCE(SUM(s.hours), 0) FROM plan_sessions s WHERE s.run_id = r.id),
			(SELECT COUNT(*) FROM plan_issues i WHERE i.run_id = r.id AND i.severity = 'error'),
			(SELECT COUNT(*) FROM plan_issues i WHERE i.run_id = r.id AND i.severity = 'warning')
		FROM plan_runs r
		ORDER BY r.created_at DESC, r.id
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plan runs: %w", err)
	}
	defer rows.Close()

	var out []*domain.RunSummary
	for rows.Next() {
		var s domain.RunSummary
		var raw rawRun
		targets := append(raw.targets(&s.PlanRun), &s.Sessions, &s.TotalHours, &s.Errors, &s.Warnings)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scanning plan run: %w", err)
		}
		if err := raw.populate(&s.PlanRun); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Delete removes a run and everything recorded for it.
func (r *SQLitePlanRunRepo) Delete(ctx context.Context, id string) error {
	for _, table := range []string{"plan_sessions", "plan_issues", "plan_priorities"} {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE run_id = ?`, id); err != nil {
			return fmt.Errorf("deleting %s: %w", table, err)
		}
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM plan_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("plan run %s: %w", id, ErrNotFound)
	}
	return nil
}

type rawRun struct {
	createdAt, startDate, outcome, style, rest string
}

func (raw *rawRun) targets(run *domain.PlanRun) []any {
	return []any{
		&run.ID, &raw.createdAt, &raw.startDate, &raw.outcome, &run.Iterations, &run.MaxIterations,
		&run.PagesPerHour, &run.Preferences.MaxHoursPerDay, &raw.style, &raw.rest, &run.InputJSON,
	}
}

func (raw *rawRun) populate(run *domain.PlanRun) error {
	var err error
	if run.CreatedAt, err = time.Parse(time.RFC3339, raw.createdAt); err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	if run.StartDate, err = domain.ParseDate(raw.startDate); err != nil {
		return fmt.Errorf("parsing start_date: %w", err)
	}
	run.Outcome = domain.LoopState(raw.outcome)
	run.Preferences.StudyStyle = domain.StudyStyle(raw.style)
	var markers []string
	if raw.rest != "" {
		markers = strings.Split(raw.rest, ",")
	}
	if run.Preferences.RestDays, err = domain.ParseRestDays(markers); err != nil {
		return fmt.Errorf("parsing rest_days: %w", err)
	}
	return nil
}

func scanRun(row *sql.Row) (*domain.PlanRun, error) {
	var run domain.PlanRun
	var raw rawRun
	if err := row.Scan(raw.targets(&run)...); err != nil {
		return nil, err
	}
	if err := raw.populate(&run); err != nil {
		return nil, err
	}
	return &run, nil
}
