package scheduler

import (
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// Horizon is the closed range of planning days from the start date up to
// the day before the latest exam, together with the rest days that are
// excluded from it.
type Horizon struct {
	Start time.Time
	End   time.Time // latest exam date, exclusive
	rest  domain.RestDays
	days  []time.Time
}

func NewHorizon(today time.Time, courses []domain.Course, rest domain.RestDays) Horizon {
	h := Horizon{
		Start: domain.DateOf(today),
		End:   domain.LatestExam(courses),
		rest:  rest,
	}
	for d := h.Start; d.Before(h.End); d = d.AddDate(0, 0, 1) {
		if !rest.Contains(d) {
			h.days = append(h.days, d)
		}
	}
	return h
}

// AvailableDays returns the non-rest days of the horizon in order.
func (h Horizon) AvailableDays() []time.Time {
	return h.days
}

// AvailableBefore returns the non-rest days strictly before the exam.
func (h Horizon) AvailableBefore(exam time.Time) []time.Time {
	exam = domain.DateOf(exam)
	n := 0
	for n < len(h.days) && h.days[n].Before(exam) {
		n++
	}
	return h.days[:n]
}

// IsAvailable reports whether d is a non-rest day inside the horizon.
func (h Horizon) IsAvailable(d time.Time) bool {
	d = domain.DateOf(d)
	return !d.Before(h.Start) && d.Before(h.End) && !h.rest.Contains(d)
}
