package intelligence

import (
	"github.com/alexanderramin/studyplanner/internal/domain"
)

// RunTrace is a flattened, JSON-serializable view of a finished plan run.
// It is the only context the model sees, so every claim in an explanation
// must point back to one of its keys.
type RunTrace struct {
	RunID         string              `json:"run_id"`
	Outcome       string              `json:"outcome"`
	Iterations    int                 `json:"iterations"`
	MaxIterations int                 `json:"max_iterations"`
	StartDate     string              `json:"start_date"`
	MaxHoursDay   float64             `json:"max_hours_per_day"`
	StudyStyle    string              `json:"study_style"`
	RestDays      []string            `json:"rest_days,omitempty"`
	Sessions      int                 `json:"sessions"`
	TotalHours    float64             `json:"total_hours"`
	HoursByType   map[string]float64  `json:"hours_by_type"`
	Priorities    []PriorityTraceItem `json:"priorities"`
	Issues        []IssueTraceItem    `json:"issues"`
}

type PriorityTraceItem struct {
	Rank     int     `json:"rank"`
	CourseID string  `json:"course_id"`
	Score    float64 `json:"score"`
	ExamDate string  `json:"exam_date"`
}

type IssueTraceItem struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	CourseID string `json:"course_id,omitempty"`
	Topic    string `json:"topic,omitempty"`
	Date     string `json:"date,omitempty"`
}

// BuildRunTrace converts a stored run into a trace.
func BuildRunTrace(run *domain.PlanRun) RunTrace {
	trace := RunTrace{
		RunID:         run.ID,
		Outcome:       string(run.Outcome),
		Iterations:    run.Iterations,
		MaxIterations: run.MaxIterations,
		StartDate:     domain.FormatDate(run.StartDate),
		MaxHoursDay:   run.Preferences.MaxHoursPerDay,
		StudyStyle:    string(run.Preferences.StudyStyle),
		RestDays:      run.Preferences.RestDays.Markers(),
		Sessions:      len(run.Schedule),
		TotalHours:    run.Schedule.TotalHours(),
		HoursByType:   make(map[string]float64),
	}
	for _, s := range run.Schedule {
		trace.HoursByType[string(s.Type)] += s.Hours
	}
	for _, p := range run.Priorities {
		trace.Priorities = append(trace.Priorities, PriorityTraceItem{
			Rank:     p.Rank,
			CourseID: p.CourseID,
			Score:    p.Score,
			ExamDate: domain.FormatDate(p.ExamDate),
		})
	}
	for _, iss := range run.Report.Issues {
		item := IssueTraceItem{
			Severity: string(iss.Severity),
			Code:     string(iss.Code),
			Message:  iss.Message,
			CourseID: iss.CourseID,
			Topic:    iss.TopicName,
		}
		if iss.Date != nil {
			item.Date = domain.FormatDate(*iss.Date)
		}
		trace.Issues = append(trace.Issues, item)
	}
	return trace
}

// Errors returns the error-severity issues of the trace.
func (t RunTrace) Errors() []IssueTraceItem {
	var out []IssueTraceItem
	for _, iss := range t.Issues {
		if iss.Severity == string(domain.SeverityError) {
			out = append(out, iss)
		}
	}
	return out
}

// TraceKeys returns the evidence keys an explanation factor may cite:
// "run.outcome", "run.iterations", "run.hours", "priority.<course>" and
// "issue.<code>".
func (t RunTrace) TraceKeys() map[string]bool {
	keys := map[string]bool{
		"run.outcome":    true,
		"run.iterations": true,
		"run.hours":      true,
	}
	for _, p := range t.Priorities {
		keys["priority."+p.CourseID] = true
	}
	for _, iss := range t.Issues {
		keys["issue."+iss.Code] = true
	}
	return keys
}
