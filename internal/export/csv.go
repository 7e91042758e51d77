// Package export renders schedules in the CSV layout consumed by
// spreadsheet tools and reads hand-edited files back.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// Header is the fixed column layout.
var Header = []string{"Date", "Course", "Topic", "Hours", "Type", "Notes"}

type WriteOptions struct {
	// Report, when set, is written as a comment block above the rows.
	Report *domain.ValidationReport
}

// WriteCSV writes one row per session in schedule order. Sessions without
// notes get the default note of their type.
func WriteCSV(w io.Writer, schedule domain.Schedule, opts WriteOptions) error {
	if opts.Report != nil && !opts.Report.Empty() {
		if err := writeIssueHeader(w, *opts.Report); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, s := range schedule {
		notes := s.Notes
		if notes == "" {
			notes = s.Type.DefaultNote()
		}
		row := []string{
			domain.FormatDate(s.Date),
			s.CourseID,
			s.TopicName,
			strconv.FormatFloat(s.Hours, 'f', -1, 64),
			string(s.Type),
			notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeIssueHeader(w io.Writer, r domain.ValidationReport) error {
	var b strings.Builder
	b.WriteString("# VALIDATION ISSUES:\n")
	for _, iss := range r.Issues {
		fmt.Fprintf(&b, "# [%s] %s: %s\n", iss.Severity, iss.Code, strings.ReplaceAll(iss.Message, "\n", " "))
	}
	b.WriteString("#\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// ReadCSV parses a schedule in the layout written by WriteCSV. Comment
// lines are skipped. Type strings are kept as written so the validator can
// report unknown ones.
func ReadCSV(r io.Reader) (domain.Schedule, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty schedule file")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) < 5 || !strings.EqualFold(strings.TrimSpace(header[0]), "Date") {
		return nil, fmt.Errorf("unexpected header %v (expected %s)", header, strings.Join(Header, ","))
	}

	var out domain.Schedule
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line, err)
		}
		s, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseRow(rec []string) (domain.DaySession, error) {
	if len(rec) < 5 {
		return domain.DaySession{}, fmt.Errorf("expected at least 5 columns, got %d", len(rec))
	}
	date, err := domain.ParseDate(strings.TrimSpace(rec[0]))
	if err != nil {
		return domain.DaySession{}, fmt.Errorf("invalid date %q", rec[0])
	}
	hours, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
	if err != nil {
		return domain.DaySession{}, fmt.Errorf("invalid hours %q", rec[3])
	}
	s := domain.DaySession{
		Date:      date,
		CourseID:  strings.TrimSpace(rec[1]),
		TopicName: strings.TrimSpace(rec[2]),
		Hours:     hours,
		Type:      domain.SessionType(strings.ToLower(strings.TrimSpace(rec[4]))),
	}
	if len(rec) > 5 {
		s.Notes = rec[5]
	}
	return s, nil
}
