package domain

import "time"

// PlanRun is a persisted planning run: the inputs that shaped it and the
// terminal outcome of the feedback loop.
type PlanRun struct {
	ID            string
	CreatedAt     time.Time
	StartDate     time.Time
	Outcome       LoopState
	Iterations    int
	MaxIterations int
	PagesPerHour  float64
	Preferences   Preferences
	InputJSON     string

	Schedule   Schedule
	Report     ValidationReport
	Priorities []RunPriority
}

// RunPriority is one course's position in a run's priority order.
type RunPriority struct {
	Rank     int
	CourseID string
	Score    float64
	ExamDate time.Time
}

// RunSummary is the list view of a run.
type RunSummary struct {
	PlanRun
	Sessions   int
	TotalHours float64
	Errors     int
	Warnings   int
}
