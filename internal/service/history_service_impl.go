package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/repository"
)

type historyService struct {
	runs       repository.PlanRunRepo
	sessions   repository.PlanSessionRepo
	issues     repository.PlanIssueRepo
	priorities repository.PlanPriorityRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewHistoryService(
	runs repository.PlanRunRepo,
	sessions repository.PlanSessionRepo,
	issues repository.PlanIssueRepo,
	priorities repository.PlanPriorityRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) HistoryService {
	return &historyService{
		runs:       runs,
		sessions:   sessions,
		issues:     issues,
		priorities: priorities,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *historyService) List(ctx context.Context, limit int) ([]*domain.RunSummary, error) {
	return s.runs.List(ctx, limit)
}

// Get loads a run with its schedule, report and priorities.
func (s *historyService) Get(ctx context.Context, id string) (*domain.PlanRun, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run.Schedule, err = s.sessions.ListByRun(ctx, id); err != nil {
		return nil, err
	}
	if run.Report, err = s.issues.ListByRun(ctx, id); err != nil {
		return nil, err
	}
	if run.Priorities, err = s.priorities.ListByRun(ctx, id); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *historyService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "delete-run",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"run_id": id},
		})
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLitePlanRunRepo(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting run: %w", err)
		}
		return nil
	})
}
