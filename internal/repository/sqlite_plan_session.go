package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/domain"
)

// SQLitePlanSessionRepo stores the schedule rows of a run. Row order is
// kept in seq so a schedule reads back exactly as it was written.
type SQLitePlanSessionRepo struct {
	db db.DBTX
}

func NewSQLitePlanSessionRepo(conn db.DBTX) *SQLitePlanSessionRepo {
	return &SQLitePlanSessionRepo{db: conn}
}

func (r *SQLitePlanSessionRepo) InsertAll(ctx context.Context, runID string, schedule domain.Schedule) error {
	query := `INSERT INTO plan_sessions (run_id, seq, date, course_id, topic, hours, type, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i, s := range schedule {
		_, err := r.db.ExecContext(ctx, query,
			runID, i, domain.FormatDate(s.Date), s.CourseID, s.TopicName, s.Hours, string(s.Type), s.Notes)
		if err != nil {
			return fmt.Errorf("inserting plan session %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLitePlanSessionRepo) ListByRun(ctx context.Context, runID string) (domain.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date, course_id, topic, hours, type, notes
		FROM plan_sessions WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing plan sessions: %w", err)
	}
	defer rows.Close()

	var out domain.Schedule
	for rows.Next() {
		var s domain.DaySession
		var date, typ string
		if err := rows.Scan(&date, &s.CourseID, &s.TopicName, &s.Hours, &typ, &s.Notes); err != nil {
			return nil, fmt.Errorf("scanning plan session: %w", err)
		}
		if s.Date, err = domain.ParseDate(date); err != nil {
			return nil, fmt.Errorf("parsing session date: %w", err)
		}
		s.Type = domain.SessionType(typ)
		out = append(out, s)
	}
	return out, rows.Err()
}
