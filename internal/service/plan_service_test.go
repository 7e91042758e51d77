package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/importer"
	"github.com/alexanderramin/studyplanner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlan_PersistsAcceptedRun(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	path := writeFile(t, "input.json", singleCourseInput)

	out, err := svc.plans.CreatePlan(ctx, CreatePlanRequest{InputPath: path, Now: testNow})
	require.NoError(t, err)
	require.NotEmpty(t, out.RunID)
	assert.Equal(t, out.RunID, out.Run.ID)
	assert.Equal(t, domain.StateAccepted, out.Result.State)
	require.Len(t, out.Courses, 1)
	assert.Equal(t, "Calculus", out.Courses[0].Name)

	run, err := svc.history.Get(ctx, out.RunID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateAccepted, run.Outcome)
	assert.Equal(t, out.Result.Iterations, run.Iterations)
	assert.Equal(t, 3, run.MaxIterations)
	assert.Equal(t, "2025-03-01", domain.FormatDate(run.StartDate))
	assert.Equal(t, out.Result.Schedule, run.Schedule)
	assert.Equal(t, len(out.Result.Report.Issues), len(run.Report.Issues))
	require.Len(t, run.Priorities, 1)
	assert.Equal(t, "math", run.Priorities[0].CourseID)
	assert.Contains(t, run.InputJSON, `"math"`)
}

func TestCreatePlan_DryRunWritesNothing(t *testing.T) {
	svc := newTestServices(t)
	in, err := importer.ParsePlanInput([]byte(singleCourseInput), "input.json")
	require.NoError(t, err)

	out, err := svc.plans.CreatePlan(context.Background(), CreatePlanRequest{Input: in, DryRun: true, Now: testNow})
	require.NoError(t, err)
	assert.Empty(t, out.RunID)
	assert.NotEmpty(t, out.Result.Schedule)
	require.NotNil(t, out.Run)
	assert.Empty(t, out.Run.ID)
	assert.Equal(t, out.Result.Schedule, out.Run.Schedule)
	assert.Equal(t, out.Result.State, out.Run.Outcome)
	assert.Zero(t, countRows(t, svc.db, "plan_runs"))
}

func TestCreatePlan_ValidationErrorsReportedTogether(t *testing.T) {
	svc := newTestServices(t)
	path := writeFile(t, "bad.json", `{
	  "preferences": {"max_hours_per_day": 30, "study_style": "cramming"},
	  "courses": [{"id": "x", "exam_date": "2025-03-10", "topics": [{"name": "a", "page_count": 5}]}]
	}`)

	_, err := svc.plans.CreatePlan(context.Background(), CreatePlanRequest{InputPath: path, Now: testNow})
	require.Error(t, err)

	var invalid *domain.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, err.Error(), "(2 errors)")
	assert.Zero(t, countRows(t, svc.db, "plan_runs"))
}

func TestCreatePlan_MissingFile(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.plans.CreatePlan(context.Background(), CreatePlanRequest{InputPath: "/nonexistent/input.json"})

	var invalid *domain.InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}

func TestCreatePlan_UnschedulableIsReturnedUnchanged(t *testing.T) {
	svc := newTestServices(t)
	path := writeFile(t, "tight.json", `{
	  "start_date": "2025-03-01",
	  "preferences": {"max_hours_per_day": 2},
	  "courses": [{"id": "law", "exam_date": "2025-03-03", "weight": 1,
	               "topics": [{"name": "Torts", "page_count": 400}]}]
	}`)

	_, err := svc.plans.CreatePlan(context.Background(), CreatePlanRequest{InputPath: path})
	require.Error(t, err)

	var unsched *domain.UnschedulableError
	require.True(t, errors.As(err, &unsched))
	assert.Equal(t, domain.ErrCodeUnschedulable, unsched.Code())
	assert.Zero(t, countRows(t, svc.db, "plan_runs"))
}

func TestCreatePlan_OverridesApplied(t *testing.T) {
	svc := newTestServices(t)
	in, err := importer.ParsePlanInput([]byte(singleCourseInput), "input.json")
	require.NoError(t, err)

	start := testutil.Day(0) // 2025-03-03
	out, err := svc.plans.CreatePlan(context.Background(), CreatePlanRequest{
		Input:         in,
		StartDate:     &start,
		Style:         domain.StyleIntensive,
		PagesPerHour:  20,
		MaxIterations: 1,
	})
	require.NoError(t, err)

	run, err := svc.history.Get(context.Background(), out.RunID)
	require.NoError(t, err)
	assert.Equal(t, start, run.StartDate)
	assert.Equal(t, domain.StyleIntensive, run.Preferences.StudyStyle)
	assert.Equal(t, 20.0, run.PagesPerHour)
	assert.Equal(t, 1, run.MaxIterations)
	assert.Equal(t, "2025-03-01", in.StartDate, "caller's input is not mutated")

	var learned float64
	for _, s := range run.Schedule {
		if s.Type == domain.SessionLearning {
			learned += s.Hours
		}
		assert.False(t, s.Date.Before(start))
	}
	assert.InDelta(t, 5.0, learned, 1e-9, "100 pages at 20 pages/hour")
}

func TestCreatePlan_RollsBackOnWriteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: errors.New("disk full")}
	svc := newTestServicesWithUoW(t, uow)
	svc.db = database
	path := writeFile(t, "input.json", singleCourseInput)

	_, err := svc.plans.CreatePlan(context.Background(), CreatePlanRequest{InputPath: path, Now: testNow})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.Zero(t, countRows(t, database, "plan_runs"))
	assert.Zero(t, countRows(t, database, "plan_sessions"))
}

func TestCreatePlan_ObservesUseCase(t *testing.T) {
	svc := newTestServices(t)
	path := writeFile(t, "input.json", singleCourseInput)

	out, err := svc.plans.CreatePlan(context.Background(), CreatePlanRequest{InputPath: path, Now: testNow})
	require.NoError(t, err)

	require.Len(t, svc.observer.events, 1)
	ev := svc.observer.events[0]
	assert.Equal(t, "create-plan", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, out.RunID, ev.Fields["run_id"])
	assert.Equal(t, "accepted", ev.Fields["outcome"])
	assert.Equal(t, 1, ev.Fields["courses"])
}

func TestCheckSchedule_FlagsHandEditedRows(t *testing.T) {
	svc := newTestServices(t)
	input := writeFile(t, "input.json", `{
	  "start_date": "2025-03-03",
	  "preferences": {"max_hours_per_day": 4, "rest_days": ["wednesday"]},
	  "courses": [{"id": "math", "exam_date": "2025-03-13", "weight": 0.5,
	               "topics": [{"name": "Limits", "page_count": 20}]}]
	}`)
	schedule := writeFile(t, "plan.csv", "Date,Course,Topic,Hours,Type,Notes\n"+
		"2025-03-05,math,Limits,2,learning,\n"+
		"2025-03-06,chem,Acids,1,learning,\n")

	res, err := svc.plans.CheckSchedule(context.Background(), CheckRequest{InputPath: input, SchedulePath: schedule})
	require.NoError(t, err)

	assert.False(t, res.Report.IsAcceptable())
	assert.Equal(t, 1, res.Report.CountByCode(domain.IssueRestDay))
	assert.Equal(t, 1, res.Report.CountByCode(domain.IssueUnknownCourse))
	assert.GreaterOrEqual(t, res.Report.CountByCode(domain.IssueMissingRepetition), 1)
	assert.Len(t, res.Schedule, 2)
}

func TestCheckSchedule_AcceptsGeneratedPlan(t *testing.T) {
	svc := newTestServices(t)
	in, err := importer.ParsePlanInput([]byte(singleCourseInput), "input.json")
	require.NoError(t, err)

	out, err := svc.plans.CreatePlan(context.Background(), CreatePlanRequest{Input: in, DryRun: true})
	require.NoError(t, err)

	res, err := svc.plans.CheckSchedule(context.Background(), CheckRequest{Input: in, Schedule: out.Result.Schedule})
	require.NoError(t, err)
	assert.Equal(t, out.Result.Report, res.Report)
}

func TestCheckSchedule_MalformedCSV(t *testing.T) {
	svc := newTestServices(t)
	input := writeFile(t, "input.json", singleCourseInput)
	schedule := writeFile(t, "plan.csv", "When,What\n")

	_, err := svc.plans.CheckSchedule(context.Background(), CheckRequest{InputPath: input, SchedulePath: schedule})

	var invalid *domain.InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}
