package service

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/export"
	"github.com/alexanderramin/studyplanner/internal/importer"
	"github.com/alexanderramin/studyplanner/internal/scheduler"
)

// loadInput returns the in-memory input when given, otherwise the parsed
// file at path.
func loadInput(in *importer.PlanInput, path string) (*importer.PlanInput, error) {
	if in != nil {
		return in, nil
	}
	if path == "" {
		return nil, &domain.InvalidInputError{Message: "no plan input given"}
	}
	loaded, err := importer.LoadPlanInput(path)
	if err != nil {
		return nil, &domain.InvalidInputError{Message: fmt.Sprintf("loading plan input: %v", err)}
	}
	return loaded, nil
}

// interpret validates the input and converts it to domain records. All
// validation problems are reported together.
func interpret(in *importer.PlanInput, now time.Time) (*importer.Converted, error) {
	if errs := importer.ValidatePlanInput(in); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	converted, err := importer.Convert(in, now)
	if err != nil {
		return nil, &domain.InvalidInputError{Message: err.Error()}
	}
	return converted, nil
}

func formatValidationErrors(errs []error) error {
	return &domain.InvalidInputError{
		Message: fmt.Sprintf("plan input validation failed (%d errors):\n%v", len(errs), errors.Join(errs...)),
	}
}

func readScheduleFile(path string) (domain.Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule: %w", err)
	}
	defer f.Close()
	schedule, err := export.ReadCSV(f)
	if err != nil {
		return nil, &domain.InvalidInputError{Message: fmt.Sprintf("reading schedule %s: %v", path, err)}
	}
	return schedule, nil
}

func runPriorities(scored []scheduler.ScoredCourse) []domain.RunPriority {
	out := make([]domain.RunPriority, len(scored))
	for i, sc := range scored {
		out[i] = domain.RunPriority{
			Rank:     sc.Rank,
			CourseID: sc.Course.ID,
			Score:    sc.Score,
			ExamDate: sc.Course.ExamDate,
		}
	}
	return out
}

func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
