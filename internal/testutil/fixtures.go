package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/google/uuid"
)

// Today is the fixed planning start used across tests. It is a Monday.
var Today = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

// Day returns Today shifted by n days.
func Day(n int) time.Time {
	return Today.AddDate(0, 0, n)
}

// Course options
type CourseOption func(*domain.Course)

func WithExamIn(days int) CourseOption {
	return func(c *domain.Course) {
		c.ExamDate = Day(days)
	}
}

func WithWeight(w float64) CourseOption {
	return func(c *domain.Course) {
		c.Weight = w
	}
}

func WithCourseName(name string) CourseOption {
	return func(c *domain.Course) {
		c.Name = name
	}
}

// WithTopics replaces the default topic list with one topic per page count,
// named "t1", "t2", ...
func WithTopics(pages ...int) CourseOption {
	return func(c *domain.Course) {
		c.Topics = make([]domain.Topic, len(pages))
		for i, p := range pages {
			c.Topics[i] = domain.Topic{Name: fmt.Sprintf("t%d", i+1), PageCount: p}
		}
	}
}

func NewTestCourse(id string, opts ...CourseOption) domain.Course {
	c := domain.Course{
		ID:       id,
		Name:     id,
		ExamDate: Day(14),
		Weight:   0.5,
		Topics:   []domain.Topic{{Name: "t1", PageCount: 20}},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Preference options
type PreferenceOption func(*domain.Preferences)

func WithMaxHours(h float64) PreferenceOption {
	return func(p *domain.Preferences) {
		p.MaxHoursPerDay = h
	}
}

func WithStyle(s domain.StudyStyle) PreferenceOption {
	return func(p *domain.Preferences) {
		p.StudyStyle = s
	}
}

// WithRestDays panics on an unparseable marker; fixtures are static.
func WithRestDays(markers ...string) PreferenceOption {
	return func(p *domain.Preferences) {
		rd, err := domain.ParseRestDays(markers)
		if err != nil {
			panic(err)
		}
		p.RestDays = rd
	}
}

func NewTestPreferences(opts ...PreferenceOption) domain.Preferences {
	p := domain.Preferences{MaxHoursPerDay: 4, StudyStyle: domain.StyleBalanced}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Run options
type RunOption func(*domain.PlanRun)

func WithCreatedAt(t time.Time) RunOption {
	return func(r *domain.PlanRun) {
		r.CreatedAt = t
	}
}

func WithOutcome(s domain.LoopState) RunOption {
	return func(r *domain.PlanRun) {
		r.Outcome = s
	}
}

func NewTestRun(opts ...RunOption) *domain.PlanRun {
	r := &domain.PlanRun{
		ID:            uuid.New().String(),
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
		StartDate:     Today,
		Outcome:       domain.StateAccepted,
		Iterations:    1,
		MaxIterations: 3,
		PagesPerHour:  10,
		Preferences:   NewTestPreferences(WithRestDays("sunday")),
		InputJSON:     `{}`,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewTestSession builds a session row for course/topic on Day(day).
func NewTestSession(day int, courseID, topic string, hours float64, typ domain.SessionType) domain.DaySession {
	return domain.DaySession{
		Date:      Day(day),
		CourseID:  courseID,
		TopicName: topic,
		Hours:     hours,
		Type:      typ,
		Notes:     typ.DefaultNote(),
	}
}
