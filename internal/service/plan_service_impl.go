package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/importer"
	"github.com/alexanderramin/studyplanner/internal/planner"
	"github.com/alexanderramin/studyplanner/internal/repository"
	"github.com/alexanderramin/studyplanner/internal/validation"
	"github.com/google/uuid"
)

type planService struct {
	cfg      planner.Config
	uow      db.UnitOfWork
	logger   *slog.Logger
	observer UseCaseObserver
}

// NewPlanService builds the plan use cases. uow may be nil when every call
// is a dry run. logger receives the loop's state transitions.
func NewPlanService(cfg planner.Config, uow db.UnitOfWork, logger *slog.Logger, observers ...UseCaseObserver) PlanService {
	return &planService{
		cfg:      cfg,
		uow:      uow,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) CreatePlan(ctx context.Context, req CreatePlanRequest) (outcome *PlanOutcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"dry_run": req.DryRun}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var in *importer.PlanInput
	in, err = loadInput(req.Input, req.InputPath)
	if err != nil {
		return nil, err
	}
	in = applyOverrides(in, req)

	var converted *importer.Converted
	converted, err = interpret(in, nowOr(req.Now))
	if err != nil {
		return nil, err
	}
	fields["courses"] = len(converted.Courses)

	cfg := s.cfg
	if req.PagesPerHour > 0 {
		cfg.PagesPerHour = req.PagesPerHour
	}
	if req.MaxIterations > 0 {
		cfg.MaxIterations = req.MaxIterations
	}
	p := planner.New(cfg, planner.WithLogger(s.logger))

	var result *planner.PlanResult
	result, err = p.Plan(ctx, planner.PlanRequest{
		Today:       converted.Today,
		Courses:     converted.Courses,
		Preferences: converted.Preferences,
	})
	if err != nil {
		return nil, err
	}
	fields["outcome"] = string(result.State)
	fields["iterations"] = result.Iterations
	fields["sessions"] = len(result.Schedule)

	run := &domain.PlanRun{
		CreatedAt:     time.Now().UTC(),
		StartDate:     converted.Today,
		Outcome:       result.State,
		Iterations:    result.Iterations,
		MaxIterations: p.Config().MaxIterations,
		PagesPerHour:  p.Config().PagesPerHour,
		Preferences:   converted.Preferences,
		Schedule:      result.Schedule,
		Report:        result.Report,
		Priorities:    runPriorities(result.Priorities),
	}
	outcome = &PlanOutcome{Courses: converted.Courses, Result: result, Run: run}
	if req.DryRun {
		return outcome, nil
	}

	run.ID = uuid.New().String()
	if data, mErr := json.Marshal(in); mErr == nil {
		run.InputJSON = string(data)
	}
	if err = s.persist(ctx, run); err != nil {
		return nil, err
	}
	fields["run_id"] = run.ID
	outcome.RunID = run.ID
	return outcome, nil
}

// persist writes the run and everything recorded for it atomically.
func (s *planService) persist(ctx context.Context, run *domain.PlanRun) error {
	if s.uow == nil {
		return fmt.Errorf("persisting plan run: no history database configured")
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLitePlanRunRepo(tx).Create(ctx, run); err != nil {
			return fmt.Errorf("creating plan run: %w", err)
		}
		if err := repository.NewSQLitePlanSessionRepo(tx).InsertAll(ctx, run.ID, run.Schedule); err != nil {
			return fmt.Errorf("storing sessions: %w", err)
		}
		if err := repository.NewSQLitePlanIssueRepo(tx).InsertAll(ctx, run.ID, run.Report); err != nil {
			return fmt.Errorf("storing issues: %w", err)
		}
		if err := repository.NewSQLitePlanPriorityRepo(tx).InsertAll(ctx, run.ID, run.Priorities); err != nil {
			return fmt.Errorf("storing priorities: %w", err)
		}
		return nil
	})
}

func (s *planService) CheckSchedule(ctx context.Context, req CheckRequest) (result *CheckResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"schedule": req.SchedulePath}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "check-schedule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var in *importer.PlanInput
	in, err = loadInput(req.Input, req.InputPath)
	if err != nil {
		return nil, err
	}
	in = applyOverrides(in, CreatePlanRequest{StartDate: req.StartDate})

	var converted *importer.Converted
	converted, err = interpret(in, nowOr(req.Now))
	if err != nil {
		return nil, err
	}

	schedule := req.Schedule
	if schedule == nil {
		if schedule, err = readScheduleFile(req.SchedulePath); err != nil {
			return nil, err
		}
	}
	schedule = append(domain.Schedule(nil), schedule...)
	schedule.Sort()

	report := validation.Validate(schedule, converted.Courses, converted.Preferences)
	fields["errors"] = len(report.Errors())
	fields["warnings"] = len(report.Warnings())
	return &CheckResult{Schedule: schedule, Report: report}, nil
}

// applyOverrides returns a copy of in with the request's start date and
// study style applied, so validation sees the effective values.
func applyOverrides(in *importer.PlanInput, req CreatePlanRequest) *importer.PlanInput {
	out := *in
	if req.StartDate != nil {
		out.StartDate = domain.FormatDate(*req.StartDate)
	}
	if req.Style != "" {
		out.Preferences.StudyStyle = string(req.Style)
	}
	return &out
}
