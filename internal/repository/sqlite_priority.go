package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/domain"
)

type SQLitePlanPriorityRepo struct {
	db db.DBTX
}

func NewSQLitePlanPriorityRepo(conn db.DBTX) *SQLitePlanPriorityRepo {
	return &SQLitePlanPriorityRepo{db: conn}
}

func (r *SQLitePlanPriorityRepo) InsertAll(ctx context.Context, runID string, priorities []domain.RunPriority) error {
	query := `INSERT INTO plan_priorities (run_id, rank, course_id, score, exam_date) VALUES (?, ?, ?, ?, ?)`
	for _, p := range priorities {
		_, err := r.db.ExecContext(ctx, query, runID, p.Rank, p.CourseID, p.Score, domain.FormatDate(p.ExamDate))
		if err != nil {
			return fmt.Errorf("inserting priority of %s: %w", p.CourseID, err)
		}
	}
	return nil
}

func (r *SQLitePlanPriorityRepo) ListByRun(ctx context.Context, runID string) ([]domain.RunPriority, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT rank, course_id, score, exam_date
		FROM plan_priorities WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing priorities: %w", err)
	}
	defer rows.Close()

	var out []domain.RunPriority
	for rows.Next() {
		var p domain.RunPriority
		var exam string
		if err := rows.Scan(&p.Rank, &p.CourseID, &p.Score, &exam); err != nil {
			return nil, fmt.Errorf("scanning priority: %w", err)
		}
		if p.ExamDate, err = domain.ParseDate(exam); err != nil {
			return nil, fmt.Errorf("parsing exam_date: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
