package domain

import (
	"sort"
	"time"
)

// DaySession is one scheduled block of study for a single topic on a date.
type DaySession struct {
	Date      time.Time
	CourseID  string
	TopicName string
	Hours     float64
	Type      SessionType
	Notes     string
}

// Schedule is an ordered sequence of sessions, date ascending. It is
// rebuilt wholesale on every generation attempt.
type Schedule []DaySession

// Sort orders sessions by date, then session type, then course and topic.
// The order is total so that equal schedules always render identically.
func (s Schedule) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		a, b := s[i], s[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Type.Order() != b.Type.Order() {
			return a.Type.Order() < b.Type.Order()
		}
		if a.CourseID != b.CourseID {
			return a.CourseID < b.CourseID
		}
		return a.TopicName < b.TopicName
	})
}

// HoursByDate sums session hours per calendar date.
func (s Schedule) HoursByDate() map[string]float64 {
	out := make(map[string]float64)
	for _, sess := range s {
		out[FormatDate(sess.Date)] += sess.Hours
	}
	return out
}

// Dates returns the distinct session dates in ascending order.
func (s Schedule) Dates() []time.Time {
	seen := make(map[string]bool)
	var out []time.Time
	for _, sess := range s {
		key := FormatDate(sess.Date)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, DateOf(sess.Date))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// TotalHours sums hours across all sessions.
func (s Schedule) TotalHours() float64 {
	var total float64
	for _, sess := range s {
		total += sess.Hours
	}
	return total
}

// ForTopic returns the sessions of one topic in schedule order.
func (s Schedule) ForTopic(courseID, topic string) []DaySession {
	var out []DaySession
	for _, sess := range s {
		if sess.CourseID == courseID && sess.TopicName == topic {
			out = append(out, sess)
		}
	}
	return out
}

// CountByType counts sessions per type.
func (s Schedule) CountByType() map[SessionType]int {
	out := make(map[SessionType]int)
	for _, sess := range s {
		out[sess.Type]++
	}
	return out
}
