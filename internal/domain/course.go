package domain

import (
	"fmt"
	"time"
)

type Topic struct {
	Name      string
	PageCount int
}

type Course struct {
	ID       string
	Name     string
	ExamDate time.Time
	// Weight is the exam's share of the final grade, in [0, 1].
	Weight float64
	Topics []Topic
}

// TotalPages is the derived volume of the course.
func (c *Course) TotalPages() int {
	total := 0
	for _, t := range c.Topics {
		total += t.PageCount
	}
	return total
}

// DisplayName prefers the human name and falls back to the identifier.
func (c *Course) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// HasTopic reports whether the course declares a topic with that name.
func (c *Course) HasTopic(name string) bool {
	for _, t := range c.Topics {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Validate checks the course invariants relative to the planning start date.
func (c *Course) Validate(today time.Time) error {
	if c.ID == "" {
		return &InvalidInputError{Message: "course id is required"}
	}
	if !DateOf(c.ExamDate).After(DateOf(today)) {
		return &InvalidInputError{
			CourseID: c.ID,
			Message: fmt.Sprintf("exam date %s is not after planning start %s",
				FormatDate(c.ExamDate), FormatDate(today)),
		}
	}
	if c.Weight < 0 || c.Weight > 1 {
		return &InvalidInputError{CourseID: c.ID, Message: fmt.Sprintf("weight %.2f outside [0, 1]", c.Weight)}
	}
	if len(c.Topics) == 0 {
		return &InvalidInputError{CourseID: c.ID, Message: "course has no topics"}
	}
	seen := make(map[string]bool, len(c.Topics))
	for _, t := range c.Topics {
		if t.Name == "" {
			return &InvalidInputError{CourseID: c.ID, Message: "topic name is required"}
		}
		if seen[t.Name] {
			return &InvalidInputError{CourseID: c.ID, Message: fmt.Sprintf("duplicate topic %q", t.Name)}
		}
		seen[t.Name] = true
		if t.PageCount < 0 {
			return &InvalidInputError{CourseID: c.ID, Message: fmt.Sprintf("topic %q has negative page count", t.Name)}
		}
	}
	return nil
}

// LatestExam returns the latest exam date across courses, or the zero time
// when the slice is empty.
func LatestExam(courses []Course) time.Time {
	var latest time.Time
	for _, c := range courses {
		if c.ExamDate.After(latest) {
			latest = c.ExamDate
		}
	}
	return DateOf(latest)
}

// CourseIndex maps course IDs to courses for lookups by session references.
func CourseIndex(courses []Course) map[string]*Course {
	idx := make(map[string]*Course, len(courses))
	for i := range courses {
		idx[courses[i].ID] = &courses[i]
	}
	return idx
}
