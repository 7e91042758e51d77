package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate.RegisterValidation("rest_day", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseRestDays([]string{fl.Field().String()})
			return err == nil
		})
		validate.RegisterValidation("study_style", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseStudyStyle(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// ValidatePlanInput checks the input for errors before conversion.
// Returns a slice of all validation errors found.
func ValidatePlanInput(in *PlanInput) []error {
	var errs []error

	if err := inputValidator().Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []error{err}
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	errs = append(errs, validateCourses(in)...)
	return errs
}

func fieldError(fe validator.FieldError) error {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "min":
		return fmt.Errorf("%s must contain at least %s entry", field, fe.Param())
	case "datetime":
		return fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, fe.Value())
	case "gte", "lte":
		return fmt.Errorf("%s: value %v out of range", field, fe.Value())
	case "rest_day":
		return fmt.Errorf("%s: %q is neither a weekday nor a YYYY-MM-DD date", field, fe.Value())
	case "study_style":
		return fmt.Errorf("%s: invalid value %q (expected balanced|intensive|spaced_repetition)", field, fe.Value())
	}
	return fmt.Errorf("%s: failed %s validation", field, fe.Tag())
}

// validateCourses covers the cross-field rules struct tags cannot express.
func validateCourses(in *PlanInput) []error {
	var errs []error
	ids := make(map[string]bool)
	start, startErr := domain.ParseDate(in.StartDate)

	for i, c := range in.Courses {
		prefix := fmt.Sprintf("courses[%d]", i)
		if c.ID != "" {
			if ids[c.ID] {
				errs = append(errs, fmt.Errorf("%s: duplicate course id %q", prefix, c.ID))
			}
			ids[c.ID] = true
		}
		if c.Weight != nil && c.WeightPct != nil {
			errs = append(errs, fmt.Errorf("%s: set either weight or weight_pct, not both", prefix))
		}
		if in.StartDate != "" && startErr == nil {
			if exam, err := domain.ParseDate(c.ExamDate); err == nil && !exam.After(start) {
				errs = append(errs, fmt.Errorf("%s.exam_date %q must be after start_date %q", prefix, c.ExamDate, in.StartDate))
			}
		}
		topics := make(map[string]bool)
		for j, t := range c.Topics {
			if t.Name == "" {
				continue
			}
			if topics[t.Name] {
				errs = append(errs, fmt.Errorf("%s.topics[%d]: duplicate topic %q", prefix, j, t.Name))
			}
			topics[t.Name] = true
		}
	}
	return errs
}
