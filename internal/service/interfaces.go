package service

import (
	"context"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/importer"
	"github.com/alexanderramin/studyplanner/internal/intelligence"
	"github.com/alexanderramin/studyplanner/internal/planner"
)

// CreatePlanRequest names the plan input and per-run overrides. Exactly one
// of InputPath and Input is used; Input wins when both are set. Zero
// override values keep the input's or the config's value.
type CreatePlanRequest struct {
	InputPath     string
	Input         *importer.PlanInput
	StartDate     *time.Time
	Style         domain.StudyStyle
	PagesPerHour  float64
	MaxIterations int
	DryRun        bool
	// Now defaults to time.Now and supplies the start date when neither the
	// input nor StartDate does.
	Now time.Time
}

// PlanOutcome is the result of CreatePlan. RunID and Run.ID are empty for
// dry runs.
type PlanOutcome struct {
	RunID   string
	Courses []domain.Course
	Result  *planner.PlanResult
	Run     *domain.PlanRun
}

type CheckRequest struct {
	InputPath    string
	Input        *importer.PlanInput
	SchedulePath string
	Schedule     domain.Schedule
	StartDate    *time.Time
	Now          time.Time
}

type CheckResult struct {
	Schedule domain.Schedule
	Report   domain.ValidationReport
}

type PlanService interface {
	CreatePlan(ctx context.Context, req CreatePlanRequest) (*PlanOutcome, error)
	CheckSchedule(ctx context.Context, req CheckRequest) (*CheckResult, error)
}

type HistoryService interface {
	List(ctx context.Context, limit int) ([]*domain.RunSummary, error)
	Get(ctx context.Context, id string) (*domain.PlanRun, error)
	Delete(ctx context.Context, id string) error
}

type ExplainService interface {
	ExplainRun(ctx context.Context, runID string) (*intelligence.Explanation, error)
}
