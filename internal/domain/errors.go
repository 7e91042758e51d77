package domain

import "fmt"

type PlanErrorCode string

const (
	ErrCodeInvalidInput  PlanErrorCode = "INVALID_INPUT"
	ErrCodeUnschedulable PlanErrorCode = "UNSCHEDULABLE"
)

// InvalidInputError reports a malformed or temporally impossible course
// model. It is fatal and never retried.
type InvalidInputError struct {
	CourseID string
	Message  string
}

func (e *InvalidInputError) Code() PlanErrorCode { return ErrCodeInvalidInput }

func (e *InvalidInputError) Error() string {
	if e.CourseID != "" {
		return fmt.Sprintf("%s: course %s: %s", ErrCodeInvalidInput, e.CourseID, e.Message)
	}
	return fmt.Sprintf("%s: %s", ErrCodeInvalidInput, e.Message)
}

// UnschedulableError reports that the required study volume cannot fit
// into the horizon's total capacity. Retrying cannot change capacity.
type UnschedulableError struct {
	CourseID       string // set when a single course has no study day at all
	RequiredHours  float64
	AvailableHours float64
}

func (e *UnschedulableError) Code() PlanErrorCode { return ErrCodeUnschedulable }

func (e *UnschedulableError) Error() string {
	if e.CourseID != "" {
		return fmt.Sprintf("%s: course %s needs %.1f study hours but has no study day before its exam",
			ErrCodeUnschedulable, e.CourseID, e.RequiredHours)
	}
	return fmt.Sprintf("%s: %.1f study hours required but only %.1f available before the last exam",
		ErrCodeUnschedulable, e.RequiredHours, e.AvailableHours)
}
