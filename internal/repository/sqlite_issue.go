package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/domain"
)

// SQLitePlanIssueRepo stores the terminal validation report of a run.
type SQLitePlanIssueRepo struct {
	db db.DBTX
}

func NewSQLitePlanIssueRepo(conn db.DBTX) *SQLitePlanIssueRepo {
	return &SQLitePlanIssueRepo{db: conn}
}

func (r *SQLitePlanIssueRepo) InsertAll(ctx context.Context, runID string, report domain.ValidationReport) error {
	query := `INSERT INTO plan_issues (run_id, seq, severity, code, message, course_id, topic, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i, iss := range report.Issues {
		_, err := r.db.ExecContext(ctx, query,
			runID, i, string(iss.Severity), string(iss.Code), iss.Message,
			nullableString(iss.CourseID), nullableString(iss.TopicName), nullableDate(iss.Date))
		if err != nil {
			return fmt.Errorf("inserting plan issue %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLitePlanIssueRepo) ListByRun(ctx context.Context, runID string) (domain.ValidationReport, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT severity, code, message, course_id, topic, date
		FROM plan_issues WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return domain.ValidationReport{}, fmt.Errorf("listing plan issues: %w", err)
	}
	defer rows.Close()

	var report domain.ValidationReport
	for rows.Next() {
		var iss domain.ValidationIssue
		var severity, code string
		var courseID, topic, date sql.NullString
		if err := rows.Scan(&severity, &code, &iss.Message, &courseID, &topic, &date); err != nil {
			return domain.ValidationReport{}, fmt.Errorf("scanning plan issue: %w", err)
		}
		iss.Severity = domain.Severity(severity)
		iss.Code = domain.IssueCode(code)
		iss.CourseID = courseID.String
		iss.TopicName = topic.String
		iss.Date = parseNullableDate(date)
		report.Issues = append(report.Issues, iss)
	}
	return report, rows.Err()
}
