// Package validation checks a candidate schedule against the course model
// and the user's preferences.
package validation

import (
	"sort"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// Validate produces the report for a schedule. It is pure and evaluates
// every rule on every call, in a fixed order, so identical inputs always
// yield an identical report.
func Validate(schedule domain.Schedule, courses []domain.Course, prefs domain.Preferences) domain.ValidationReport {
	v := newView(schedule, courses, prefs)

	rules := []func(*view) []domain.ValidationIssue{
		checkReferences,
		checkDailyOverload,
		checkPreferenceOverload,
		checkTopicCoverage,
		checkTemporalValidity,
		checkRestDays,
		checkRepetition,
		checkReviewOrder,
		checkReviewSpacing,
		checkExamGap,
		checkDuplicateLearning,
	}

	var report domain.ValidationReport
	for _, rule := range rules {
		report.Issues = append(report.Issues, rule(v)...)
	}
	return report
}

// view is a read-only index over the inputs shared by the rules.
type view struct {
	sessions domain.Schedule // sorted copy, valid references only
	all      domain.Schedule // sorted copy, every session
	courses  []domain.Course
	index    map[string]*domain.Course
	prefs    domain.Preferences
	hours    map[string]float64
	dates    []time.Time
}

func newView(schedule domain.Schedule, courses []domain.Course, prefs domain.Preferences) *view {
	all := make(domain.Schedule, len(schedule))
	copy(all, schedule)
	for i := range all {
		all[i].Date = domain.DateOf(all[i].Date)
	}
	all.Sort()

	v := &view{
		all:     all,
		courses: courses,
		index:   domain.CourseIndex(courses),
		prefs:   prefs,
		hours:   all.HoursByDate(),
		dates:   all.Dates(),
	}
	for _, s := range all {
		if c, ok := v.index[s.CourseID]; ok && c.HasTopic(s.TopicName) {
			v.sessions = append(v.sessions, s)
		}
	}
	return v
}

type topicSessions struct {
	learning []domain.DaySession
	review1  []domain.DaySession
	review2  []domain.DaySession
}

func (ts topicSessions) lastLearning() (time.Time, bool) {
	if len(ts.learning) == 0 {
		return time.Time{}, false
	}
	return ts.learning[len(ts.learning)-1].Date, true
}

func (v *view) topic(courseID, name string) topicSessions {
	var ts topicSessions
	for _, s := range v.sessions {
		if s.CourseID != courseID || s.TopicName != name {
			continue
		}
		switch s.Type {
		case domain.SessionLearning:
			ts.learning = append(ts.learning, s)
		case domain.SessionReview1:
			ts.review1 = append(ts.review1, s)
		case domain.SessionReview2:
			ts.review2 = append(ts.review2, s)
		}
	}
	return ts
}

// availableBetween reports whether a non-rest day exists strictly between
// after and before.
func (v *view) availableBetween(after, before time.Time) bool {
	return v.availableDaysBetween(after, before) > 0
}

func (v *view) availableDaysBetween(after, before time.Time) int {
	n := 0
	for d := after.AddDate(0, 0, 1); d.Before(before); d = d.AddDate(0, 0, 1) {
		if !v.prefs.RestDays.Contains(d) {
			n++
		}
	}
	return n
}

func datePtr(t time.Time) *time.Time {
	d := domain.DateOf(t)
	return &d
}

// sortedKeys returns map keys in ascending order.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
