package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// FormatRun renders a plan run: outcome line, priorities, the schedule
// grouped by day and the validation report. courses supplies display
// names and may be nil.
func FormatRun(run *domain.PlanRun, courses []domain.Course) string {
	var b strings.Builder

	names := courseNames(courses)

	b.WriteString(FormatRunHeader(run))
	b.WriteString("\n\n")

	if len(run.Priorities) > 0 {
		b.WriteString(Header("Priorities"))
		b.WriteString("\n")
		b.WriteString(FormatPriorities(run.Priorities, names, run.StartDate))
		b.WriteString("\n")
	}

	b.WriteString(Header("Schedule"))
	b.WriteString("\n")
	b.WriteString(FormatSchedule(run.Schedule, run.Preferences.MaxHoursPerDay))
	b.WriteString("\n")

	b.WriteString(Header("Validation"))
	b.WriteString("\n")
	b.WriteString(FormatIssues(run.Report))
	return b.String()
}

// FormatRunHeader renders the one-line outcome summary of a run.
func FormatRunHeader(run *domain.PlanRun) string {
	parts := []string{OutcomePill(run.Outcome)}
	parts = append(parts, fmt.Sprintf("after %d/%d iterations", run.Iterations, run.MaxIterations))
	parts = append(parts, fmt.Sprintf("%d sessions", len(run.Schedule)))
	parts = append(parts, FormatHours(run.Schedule.TotalHours()))
	line := strings.Join(parts, Dim(" · "))

	var meta []string
	if run.ID != "" {
		meta = append(meta, "run "+run.ID)
	} else {
		meta = append(meta, "dry run, not saved")
	}
	meta = append(meta, "from "+domain.FormatDate(run.StartDate))
	meta = append(meta, fmt.Sprintf("%s/day", FormatHours(run.Preferences.MaxHoursPerDay)))
	if run.Preferences.StudyStyle != "" {
		meta = append(meta, string(run.Preferences.StudyStyle))
	}
	if !run.Preferences.RestDays.Empty() {
		meta = append(meta, "rest "+strings.Join(run.Preferences.RestDays.Markers(), ","))
	}
	return line + "\n" + Dim(strings.Join(meta, "  "))
}

// FormatPriorities renders the ranked course table.
func FormatPriorities(priorities []domain.RunPriority, names map[string]string, today time.Time) string {
	rows := make([][]string, 0, len(priorities))
	for _, p := range priorities {
		course := p.CourseID
		if n, ok := names[p.CourseID]; ok && n != "" && n != p.CourseID {
			course = fmt.Sprintf("%s %s", p.CourseID, Dim(n))
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.Rank),
			course,
			fmt.Sprintf("%.3f", p.Score),
			domain.FormatDate(p.ExamDate),
			Dim(RelativeDays(today, p.ExamDate)),
		})
	}
	return RenderAlignedTable(
		[]string{"#", "COURSE", "SCORE", "EXAM", ""},
		[]Align{AlignRight, AlignLeft, AlignRight},
		rows,
	)
}

// FormatSchedule renders sessions grouped by day with a per-day total.
// capacity > 0 adds a load bar against the daily maximum.
func FormatSchedule(schedule domain.Schedule, capacity float64) string {
	if len(schedule) == 0 {
		return Dim("  No sessions scheduled.") + "\n"
	}

	sorted := append(domain.Schedule(nil), schedule...)
	sorted.Sort()
	hours := sorted.HoursByDate()

	var b strings.Builder
	var current string
	for _, s := range sorted {
		day := domain.FormatDate(s.Date)
		if day != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = day
			total := hours[day]
			line := fmt.Sprintf("  %s  %s", Bold(DayLabel(s.Date)), Dim(FormatHours(total)))
			if capacity > 0 {
				line += "  " + HoursBar(total, capacity, domain.HardDailyLimitHours, 12)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString(fmt.Sprintf("    %-9s %-12s %-24s %6s\n",
			SessionTypeColor(s.Type).Render(string(s.Type)),
			s.CourseID,
			s.TopicName,
			FormatHours(s.Hours),
		))
	}
	return b.String()
}

// FormatIssues renders a validation report, errors first.
func FormatIssues(report domain.ValidationReport) string {
	if report.Empty() {
		return StyleGreen.Render("  ✔ No issues found.") + "\n"
	}

	var b strings.Builder
	for _, group := range [][]domain.ValidationIssue{report.Errors(), report.Warnings()} {
		for _, issue := range group {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				SeverityBadge(issue.Severity),
				Dim("["+string(issue.Code)+"]"),
				issue.Message,
			))
		}
	}
	b.WriteString(Dim(fmt.Sprintf("  %d errors, %d warnings\n", len(report.Errors()), len(report.Warnings()))))
	return b.String()
}

func courseNames(courses []domain.Course) map[string]string {
	names := make(map[string]string, len(courses))
	for i := range courses {
		names[courses[i].ID] = courses[i].Name
	}
	return names
}
