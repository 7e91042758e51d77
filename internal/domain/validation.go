package domain

import "time"

type ValidationIssue struct {
	Severity  Severity
	Code      IssueCode
	Message   string
	CourseID  string
	TopicName string
	Date      *time.Time
}

// ValidationReport is the ordered outcome of validating one schedule.
type ValidationReport struct {
	Issues []ValidationIssue
}

// IsAcceptable is true iff the report carries no error-severity issue.
func (r ValidationReport) IsAcceptable() bool {
	for _, iss := range r.Issues {
		if iss.Severity == SeverityError {
			return false
		}
	}
	return true
}

func (r ValidationReport) Errors() []ValidationIssue {
	return r.filter(SeverityError)
}

func (r ValidationReport) Warnings() []ValidationIssue {
	return r.filter(SeverityWarning)
}

func (r ValidationReport) filter(sev Severity) []ValidationIssue {
	var out []ValidationIssue
	for _, iss := range r.Issues {
		if iss.Severity == sev {
			out = append(out, iss)
		}
	}
	return out
}

// CountByCode counts issues with the given code regardless of severity.
func (r ValidationReport) CountByCode(code IssueCode) int {
	n := 0
	for _, iss := range r.Issues {
		if iss.Code == code {
			n++
		}
	}
	return n
}

// Empty reports whether the report carries no issues at all.
func (r ValidationReport) Empty() bool {
	return len(r.Issues) == 0
}
