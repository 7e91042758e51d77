// Package planner drives the bounded generate/validate feedback loop.
package planner

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/scheduler"
	"github.com/alexanderramin/studyplanner/internal/validation"
)

type PlanRequest struct {
	Today       time.Time
	Courses     []domain.Course
	Preferences domain.Preferences
}

// Attempt records one generate/validate round.
type Attempt struct {
	Iteration int
	Schedule  domain.Schedule
	Report    domain.ValidationReport
}

// PlanResult is the terminal outcome of the loop. When State is
// StateExhausted the schedule is a best-effort result whose report still
// carries errors.
type PlanResult struct {
	State      domain.LoopState
	Schedule   domain.Schedule
	Report     domain.ValidationReport
	Iterations int
	Attempts   []Attempt
	Priorities []scheduler.ScoredCourse
}

type Planner struct {
	cfg       Config
	generator *scheduler.Generator
	logger    *slog.Logger
}

type Option func(*Planner)

// WithLogger routes state transitions to the given logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.logger = l
		}
	}
}

func New(cfg Config, opts ...Option) *Planner {
	cfg = cfg.normalized()
	p := &Planner{
		cfg:       cfg,
		generator: scheduler.NewGenerator(scheduler.GeneratorConfig{PagesPerHour: cfg.PagesPerHour}),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Planner) Config() Config { return p.cfg }

// Plan runs up to MaxIterations rounds. Each round's feedback is exactly the
// previous round's report. Invalid input and structural unschedulability
// are returned as errors; validation errors never are. Cancellation is
// honored only between rounds.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	if err := req.Preferences.Validate(); err != nil {
		return nil, err
	}
	today := domain.DateOf(req.Today)
	priorities, err := scheduler.PrioritizeCourses(req.Courses, today, p.cfg.Weights)
	if err != nil {
		return nil, err
	}

	result := &PlanResult{State: domain.StatePending, Priorities: priorities}
	var feedback []domain.ValidationIssue

	for {
		p.transition(ctx, result, domain.StateGenerating)
		schedule, err := p.generator.Generate(scheduler.GenerateInput{
			Today:       today,
			Courses:     priorities,
			Preferences: req.Preferences,
			Feedback:    feedback,
		})
		if err != nil {
			p.logger.ErrorContext(ctx, "plan_failed", "iteration", result.Iterations+1, "error", err.Error())
			return nil, err
		}

		counts := schedule.CountByType()
		p.logger.DebugContext(ctx, "plan_candidate",
			"iteration", result.Iterations+1,
			"learning", counts[domain.SessionLearning],
			"review_1", counts[domain.SessionReview1],
			"review_2", counts[domain.SessionReview2],
		)

		p.transition(ctx, result, domain.StateValidating)
		report := validation.Validate(schedule, req.Courses, req.Preferences)

		result.Iterations++
		result.Attempts = append(result.Attempts, Attempt{
			Iteration: result.Iterations,
			Schedule:  schedule,
			Report:    report,
		})
		result.Schedule = schedule
		result.Report = report

		if report.IsAcceptable() {
			p.transition(ctx, result, domain.StateAccepted)
			return result, nil
		}
		if result.Iterations >= p.cfg.MaxIterations {
			p.transition(ctx, result, domain.StateExhausted)
			return result, nil
		}

		p.transition(ctx, result, domain.StateRetrying)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		feedback = report.Issues
	}
}

func (p *Planner) transition(ctx context.Context, result *PlanResult, to domain.LoopState) {
	from := result.State
	result.State = to
	p.logger.InfoContext(ctx, "plan_transition",
		"from", string(from),
		"to", string(to),
		"iteration", result.Iterations,
		"errors", len(result.Report.Errors()),
		"warnings", len(result.Report.Warnings()),
	)
}
