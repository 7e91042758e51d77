package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// Converted is a plan input turned into domain records.
type Converted struct {
	Today       time.Time
	Courses     []domain.Course
	Preferences domain.Preferences
}

// Convert transforms a validated PlanInput into domain records.
// Call ValidatePlanInput first; Convert assumes the input is valid.
// now supplies the start date when the input does not name one.
func Convert(in *PlanInput, now time.Time) (*Converted, error) {
	today := domain.DateOf(now)
	if in.StartDate != "" {
		d, err := domain.ParseDate(in.StartDate)
		if err != nil {
			return nil, fmt.Errorf("parsing start_date: %w", err)
		}
		today = d
	}

	rest, err := domain.ParseRestDays(in.Preferences.RestDays)
	if err != nil {
		return nil, fmt.Errorf("parsing rest_days: %w", err)
	}
	style, err := domain.ParseStudyStyle(in.Preferences.StudyStyle)
	if err != nil {
		return nil, err
	}

	out := &Converted{
		Today: today,
		Preferences: domain.Preferences{
			MaxHoursPerDay: in.Preferences.MaxHoursPerDay,
			RestDays:       rest,
			StudyStyle:     style,
		},
	}

	for _, c := range in.Courses {
		exam, err := domain.ParseDate(c.ExamDate)
		if err != nil {
			return nil, fmt.Errorf("parsing exam_date of %s: %w", c.ID, err)
		}
		course := domain.Course{
			ID:       c.ID,
			Name:     c.Name,
			ExamDate: exam,
			Weight:   courseWeight(c),
		}
		for _, t := range c.Topics {
			course.Topics = append(course.Topics, domain.Topic{Name: t.Name, PageCount: t.Volume()})
		}
		out.Courses = append(out.Courses, course)
	}
	return out, nil
}

func courseWeight(c CourseInput) float64 {
	switch {
	case c.Weight != nil:
		return *c.Weight
	case c.WeightPct != nil:
		return *c.WeightPct / 100
	}
	return 0
}
