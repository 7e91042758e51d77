package scheduler

import (
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

type topicKey struct {
	courseID string
	topic    string
}

// Feedback is the repair plan derived from the previous attempt's
// validation issues. The zero value means a first attempt.
type Feedback struct {
	dayCaps      map[string]int // date -> unit ceiling
	extraRest    []time.Time
	forcedTopics map[topicKey]bool
	fillCourses  map[string]bool

	// clampHard caps every day at the absolute daily limit.
	clampHard bool
	// frontLoad lets every course take discretionary hours early.
	frontLoad bool
	// relaxDeadlines lets learning run up to the last day before an exam.
	relaxDeadlines bool
}

// NewFeedback translates validation issues into generator adjustments.
// Issues that the generator cannot cause (unknown references, invalid
// hours, sessions past an exam) carry no adjustment.
func NewFeedback(issues []domain.ValidationIssue, prefs domain.Preferences) Feedback {
	f := Feedback{
		dayCaps:      make(map[string]int),
		forcedTopics: make(map[topicKey]bool),
		fillCourses:  make(map[string]bool),
	}
	for _, iss := range issues {
		switch iss.Code {
		case domain.IssueOverload:
			f.clampHard = true
			f.frontLoad = true
			f.relaxDeadlines = true
			if iss.Date != nil {
				f.capDay(*iss.Date, overloadCap(prefs.MaxHoursPerDay))
			}
		case domain.IssuePreferenceOverload:
			f.frontLoad = true
			if iss.Date != nil {
				f.capDay(*iss.Date, toUnits(prefs.MaxHoursPerDay))
			}
		case domain.IssueMissingTopic:
			if iss.CourseID != "" && iss.TopicName != "" {
				f.forcedTopics[topicKey{iss.CourseID, iss.TopicName}] = true
			}
		case domain.IssueMissingRepetition, domain.IssueReviewSpacing:
			if iss.CourseID != "" {
				f.fillCourses[iss.CourseID] = true
			}
		case domain.IssueRestDay:
			if iss.Date != nil {
				f.extraRest = append(f.extraRest, domain.DateOf(*iss.Date))
			}
		}
	}
	return f
}

// overloadCap halves the usual budget of an overloaded date so the reviews
// that landed there fit next time and learning moves to other days.
func overloadCap(maxHours float64) int {
	return min(toUnits(maxHours), toUnits(domain.HardDailyLimitHours)) / 2
}

func (f *Feedback) capDay(d time.Time, units int) {
	key := domain.FormatDate(d)
	if cur, ok := f.dayCaps[key]; !ok || units < cur {
		f.dayCaps[key] = units
	}
}

// Empty reports whether the feedback requests no adjustment.
func (f Feedback) Empty() bool {
	return len(f.dayCaps) == 0 && len(f.extraRest) == 0 && len(f.forcedTopics) == 0 &&
		len(f.fillCourses) == 0 && !f.clampHard && !f.frontLoad && !f.relaxDeadlines
}

func (f Feedback) dayBudget(d time.Time, maxHours float64) int {
	budget := toUnits(maxHours)
	if f.clampHard {
		budget = min(budget, toUnits(domain.HardDailyLimitHours))
	}
	if c, ok := f.dayCaps[domain.FormatDate(d)]; ok {
		budget = min(budget, c)
	}
	return budget
}

func (f Feedback) restDays(base domain.RestDays) domain.RestDays {
	for _, d := range f.extraRest {
		base = base.WithDate(d)
	}
	return base
}
