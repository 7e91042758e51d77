package domain

import (
	"fmt"
	"strings"
)

type StudyStyle string

const (
	StyleBalanced         StudyStyle = "balanced"
	StyleIntensive        StudyStyle = "intensive"
	StyleSpacedRepetition StudyStyle = "spaced_repetition"
)

// ParseStudyStyle accepts the canonical tags plus a few spellings the
// content interpreter is known to emit ("spaced", "spaced-repetition").
// An empty string maps to StyleBalanced.
func ParseStudyStyle(s string) (StudyStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "balanced":
		return StyleBalanced, nil
	case "intensive":
		return StyleIntensive, nil
	case "spaced_repetition", "spaced-repetition", "spaced":
		return StyleSpacedRepetition, nil
	}
	return "", fmt.Errorf("unknown study style %q (expected balanced|intensive|spaced_repetition)", s)
}

// FrontLoaded reports whether the style spends the full daily budget as
// early as possible instead of pacing work evenly up to each deadline.
func (s StudyStyle) FrontLoaded() bool {
	return s == StyleIntensive
}

type SessionType string

const (
	SessionLearning SessionType = "learning"
	SessionReview1  SessionType = "review_1"
	SessionReview2  SessionType = "review_2"
)

// ValidSessionTypes is the canonical set of accepted session type strings.
var ValidSessionTypes = map[string]bool{
	"learning": true, "review_1": true, "review_2": true,
}

// Order returns the position of the session type within a topic's
// repetition sequence. Used as a sort tiebreak.
func (t SessionType) Order() int {
	switch t {
	case SessionLearning:
		return 0
	case SessionReview1:
		return 1
	case SessionReview2:
		return 2
	default:
		return 3
	}
}

// DefaultNote is the note written for a session that carries none.
func (t SessionType) DefaultNote() string {
	switch t {
	case SessionLearning:
		return "Initial learning session"
	case SessionReview1:
		return "First review (spaced repetition)"
	case SessionReview2:
		return "Final review before exam"
	default:
		return ""
	}
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type IssueCode string

const (
	IssueOverload           IssueCode = "overload"
	IssuePreferenceOverload IssueCode = "preference_overload"
	IssueMissingTopic       IssueCode = "missing_topic"
	IssuePastExam           IssueCode = "past_exam"
	IssueMissingRepetition  IssueCode = "missing_repetition"
	IssueRestDay            IssueCode = "rest_day"
	IssueReviewSpacing      IssueCode = "review_spacing"
	IssueReviewOrder        IssueCode = "review_order"
	IssueExamGap            IssueCode = "exam_gap"
	IssueDuplicateLearning  IssueCode = "duplicate_learning"
	IssueUnknownCourse      IssueCode = "unknown_course"
	IssueUnknownTopic       IssueCode = "unknown_topic"
	IssueInvalidHours       IssueCode = "invalid_hours"
	IssueInvalidType        IssueCode = "invalid_type"
)

// LoopState is a state of the generate/validate feedback loop.
type LoopState string

const (
	StatePending    LoopState = "pending"
	StateGenerating LoopState = "generating"
	StateValidating LoopState = "validating"
	StateRetrying   LoopState = "retrying"
	StateAccepted   LoopState = "accepted"
	StateExhausted  LoopState = "exhausted"
)

// Terminal reports whether no further transition leaves the state.
func (s LoopState) Terminal() bool {
	return s == StateAccepted || s == StateExhausted
}
