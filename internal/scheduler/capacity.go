package scheduler

import "github.com/alexanderramin/studyplanner/internal/domain"

type CapacityInput struct {
	Courses        []domain.Course
	Horizon        Horizon
	MaxHoursPerDay float64
	PagesPerHour   float64
}

type CourseCapacity struct {
	CourseID      string
	RequiredHours float64
	AvailableDays int
}

// CapacityResult compares the learning volume against the horizon's total
// study capacity. Reviews are excluded from the requirement.
type CapacityResult struct {
	RequiredHours  float64
	AvailableHours float64
	SlackHours     float64
	AvailableDays  int
	Courses        []CourseCapacity
}

func ComputeCapacity(input CapacityInput) CapacityResult {
	perDay := toUnits(input.MaxHoursPerDay)
	days := input.Horizon.AvailableDays()

	var required int
	result := CapacityResult{AvailableDays: len(days)}
	for _, c := range input.Courses {
		var courseUnits int
		for _, t := range c.Topics {
			courseUnits += learningUnits(t.PageCount, input.PagesPerHour)
		}
		required += courseUnits
		result.Courses = append(result.Courses, CourseCapacity{
			CourseID:      c.ID,
			RequiredHours: hoursOf(courseUnits),
			AvailableDays: len(input.Horizon.AvailableBefore(c.ExamDate)),
		})
	}

	result.RequiredHours = hoursOf(required)
	result.AvailableHours = hoursOf(perDay * len(days))
	result.SlackHours = result.AvailableHours - result.RequiredHours
	return result
}

// Err returns an UnschedulableError when the volume cannot fit at all:
// either the horizon as a whole is too small or some course has no
// study day before its exam.
func (r CapacityResult) Err() error {
	if r.RequiredHours > r.AvailableHours {
		return &domain.UnschedulableError{
			RequiredHours:  r.RequiredHours,
			AvailableHours: r.AvailableHours,
		}
	}
	for _, c := range r.Courses {
		if c.RequiredHours > 0 && c.AvailableDays == 0 {
			return &domain.UnschedulableError{CourseID: c.CourseID, RequiredHours: c.RequiredHours}
		}
	}
	return nil
}
