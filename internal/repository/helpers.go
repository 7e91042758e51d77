package repository

import (
	"database/sql"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// parseNullableDate parses a sql.NullString holding a YYYY-MM-DD date.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := domain.ParseDate(s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableDate converts a *time.Time to a value suitable for SQLite storage.
func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return domain.FormatDate(*t)
}

// nullableString maps the empty string to SQL NULL.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
