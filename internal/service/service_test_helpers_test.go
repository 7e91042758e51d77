package service

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/intelligence"
	"github.com/alexanderramin/studyplanner/internal/planner"
	"github.com/alexanderramin/studyplanner/internal/repository"
	"github.com/alexanderramin/studyplanner/internal/testutil"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

const singleCourseInput = `{
  "start_date": "2025-03-01",
  "preferences": {"max_hours_per_day": 4, "study_style": "balanced"},
  "courses": [
    {"id": "math", "name": "Calculus", "exam_date": "2025-03-11", "weight": 0.5,
     "topics": [{"name": "Limits", "page_count": 100}]}
  ]
}`

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

type testServices struct {
	db       *sql.DB
	plans    PlanService
	history  HistoryService
	explain  ExplainService
	observer *recordingObserver
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	return newTestServicesWithUoW(t, nil)
}

func newTestServicesWithUoW(t *testing.T, uow db.UnitOfWork) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	if uow == nil {
		uow = testutil.NewTestUoW(database)
	}
	obs := &recordingObserver{}
	history := NewHistoryService(
		repository.NewSQLitePlanRunRepo(database),
		repository.NewSQLitePlanSessionRepo(database),
		repository.NewSQLitePlanIssueRepo(database),
		repository.NewSQLitePlanPriorityRepo(database),
		uow,
		obs,
	)
	return &testServices{
		db:       database,
		plans:    NewPlanService(planner.DefaultConfig(), uow, nil, obs),
		history:  history,
		explain:  NewExplainService(history, intelligence.NewRunExplainer(nil), obs),
		observer: obs,
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func countRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}
