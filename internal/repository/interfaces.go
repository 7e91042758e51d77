package repository

import (
	"context"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

type PlanRunRepo interface {
	Create(ctx context.Context, run *domain.PlanRun) error
	GetByID(ctx context.Context, id string) (*domain.PlanRun, error)
	List(ctx context.Context, limit int) ([]*domain.RunSummary, error)
	Delete(ctx context.Context, id string) error
}

type PlanSessionRepo interface {
	InsertAll(ctx context.Context, runID string, schedule domain.Schedule) error
	ListByRun(ctx context.Context, runID string) (domain.Schedule, error)
}

type PlanIssueRepo interface {
	InsertAll(ctx context.Context, runID string, report domain.ValidationReport) error
	ListByRun(ctx context.Context, runID string) (domain.ValidationReport, error)
}

type PlanPriorityRepo interface {
	InsertAll(ctx context.Context, runID string, priorities []domain.RunPriority) error
	ListByRun(ctx context.Context, runID string) ([]domain.RunPriority, error)
}
