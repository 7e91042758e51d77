package intelligence

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// DeterministicExplainRun builds an explanation directly from the trace
// without a model. Used when the model is disabled, unreachable, or returns
// output that fails validation.
func DeterministicExplainRun(trace RunTrace) *Explanation {
	e := &Explanation{Confidence: 1.0}

	errs := trace.Errors()
	switch trace.Outcome {
	case string(domain.StateAccepted):
		e.SummaryShort = fmt.Sprintf("Plan accepted after %d of %d attempt(s): %d sessions, %.1f hours.",
			trace.Iterations, trace.MaxIterations, trace.Sessions, trace.TotalHours)
	default:
		e.SummaryShort = fmt.Sprintf("Plan exhausted %d attempt(s) with %d error(s) remaining: %d sessions, %.1f hours.",
			trace.Iterations, len(errs), trace.Sessions, trace.TotalHours)
	}

	e.SummaryDetailed = e.SummaryShort
	if len(trace.Priorities) > 0 {
		top := trace.Priorities[0]
		e.SummaryDetailed += fmt.Sprintf(" Highest priority: %s (exam %s, score %.2f).", top.CourseID, top.ExamDate, top.Score)
	}
	if n := len(trace.Issues) - len(errs); n > 0 {
		e.SummaryDetailed += fmt.Sprintf(" %d warning(s) left for review.", n)
	}

	e.Factors = append(e.Factors, ExplanationFactor{
		Name:           "outcome",
		Impact:         ImpactHigh,
		Direction:      outcomeDirection(trace.Outcome),
		EvidenceRefKey: "run.outcome",
		Summary:        fmt.Sprintf("Feedback loop ended %s.", trace.Outcome),
	})
	for _, p := range trace.Priorities {
		e.Factors = append(e.Factors, ExplanationFactor{
			Name:           "priority " + p.CourseID,
			Impact:         impactFromRank(p.Rank, len(trace.Priorities)),
			Direction:      DirectionFor,
			EvidenceRefKey: "priority." + p.CourseID,
			Summary:        fmt.Sprintf("Rank %d, exam %s, score %.2f.", p.Rank, p.ExamDate, p.Score),
		})
	}
	for _, code := range issueCodes(trace.Issues) {
		count, severity := 0, string(domain.SeverityWarning)
		for _, iss := range trace.Issues {
			if iss.Code == code {
				count++
				if iss.Severity == string(domain.SeverityError) {
					severity = string(domain.SeverityError)
				}
			}
		}
		impact := ImpactLow
		if severity == string(domain.SeverityError) {
			impact = ImpactHigh
		}
		e.Factors = append(e.Factors, ExplanationFactor{
			Name:           code,
			Impact:         impact,
			Direction:      DirectionAgainst,
			EvidenceRefKey: "issue." + code,
			Summary:        fmt.Sprintf("%d %s issue(s).", count, severity),
		})
	}

	e.Suggestions = DeterministicSuggestions(trace)
	return e
}

// DeterministicSuggestions maps each remaining error code to a fixed
// remedy, once per code.
func DeterministicSuggestions(trace RunTrace) []string {
	var out []string
	seen := make(map[string]bool)
	for _, iss := range trace.Errors() {
		if seen[iss.Code] {
			continue
		}
		seen[iss.Code] = true
		if s, ok := remedies[domain.IssueCode(iss.Code)]; ok {
			out = append(out, s)
		}
	}
	return out
}

var remedies = map[domain.IssueCode]string{
	domain.IssueOverload:           "Spread the workload: start earlier or reduce pages so no day needs more than 8 hours.",
	domain.IssuePreferenceOverload: "Raise max_hours_per_day or remove a rest day.",
	domain.IssueMissingTopic:       "Give the uncovered topics more days before their exam.",
	domain.IssuePastExam:           "Move sessions dated on or after the exam to earlier days.",
	domain.IssueMissingRepetition:  "Leave at least one free day between learning and the exam for reviews.",
	domain.IssueRestDay:            "Move sessions off declared rest days.",
	domain.IssueUnknownCourse:      "Check the course ids in the schedule file against the course list.",
	domain.IssueUnknownTopic:       "Check the topic names in the schedule file against the course list.",
	domain.IssueInvalidHours:       "Every session needs a positive number of hours.",
	domain.IssueInvalidType:        "Session types must be learning, review_1 or review_2.",
}

func outcomeDirection(outcome string) string {
	if outcome == string(domain.StateAccepted) {
		return DirectionFor
	}
	return DirectionAgainst
}

func impactFromRank(rank, total int) string {
	switch {
	case rank == 1:
		return ImpactHigh
	case rank*2 <= total:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

func issueCodes(issues []IssueTraceItem) []string {
	set := make(map[string]bool)
	for _, iss := range issues {
		set[iss.Code] = true
	}
	codes := make([]string, 0, len(set))
	for c := range set {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
