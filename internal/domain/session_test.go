package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedule_SortIsTotal(t *testing.T) {
	d1 := planStart
	d2 := planStart.AddDate(0, 0, 1)
	s := Schedule{
		{Date: d2, CourseID: "a", TopicName: "x", Hours: 1, Type: SessionLearning},
		{Date: d1, CourseID: "b", TopicName: "y", Hours: 1, Type: SessionReview1},
		{Date: d1, CourseID: "b", TopicName: "a", Hours: 1, Type: SessionLearning},
		{Date: d1, CourseID: "a", TopicName: "z", Hours: 1, Type: SessionLearning},
	}
	s.Sort()

	assert.Equal(t, "a", s[0].CourseID)
	assert.Equal(t, "b", s[1].CourseID)
	assert.Equal(t, "a", s[1].TopicName)
	assert.Equal(t, SessionReview1, s[2].Type)
	assert.Equal(t, d2, s[3].Date)
}

func TestSchedule_Aggregates(t *testing.T) {
	d1 := planStart
	d2 := planStart.AddDate(0, 0, 3)
	s := Schedule{
		{Date: d1, CourseID: "a", TopicName: "x", Hours: 2.5, Type: SessionLearning},
		{Date: d1, CourseID: "b", TopicName: "y", Hours: 1, Type: SessionLearning},
		{Date: d2, CourseID: "a", TopicName: "x", Hours: 0.5, Type: SessionReview1},
	}

	assert.Equal(t, 3.5, s.HoursByDate()["2025-03-01"])
	assert.Equal(t, 4.0, s.TotalHours())
	assert.Len(t, s.Dates(), 2)
	assert.Len(t, s.ForTopic("a", "x"), 2)
	assert.Equal(t, 2, s.CountByType()[SessionLearning])
}

func TestValidationReport_IsAcceptable(t *testing.T) {
	r := ValidationReport{}
	assert.True(t, r.IsAcceptable())
	assert.True(t, r.Empty())

	r.Issues = append(r.Issues, ValidationIssue{Severity: SeverityWarning, Code: IssuePreferenceOverload})
	assert.True(t, r.IsAcceptable(), "warnings never block acceptance")

	r.Issues = append(r.Issues, ValidationIssue{Severity: SeverityError, Code: IssueOverload})
	assert.False(t, r.IsAcceptable())
	assert.Len(t, r.Errors(), 1)
	assert.Len(t, r.Warnings(), 1)
	assert.Equal(t, 1, r.CountByCode(IssueOverload))
}

func TestLoopState_Terminal(t *testing.T) {
	assert.True(t, StateAccepted.Terminal())
	assert.True(t, StateExhausted.Terminal())
	assert.False(t, StateRetrying.Terminal())
	assert.False(t, StatePending.Terminal())
}

func TestSessionType_DefaultNote(t *testing.T) {
	assert.Equal(t, "Initial learning session", SessionLearning.DefaultNote())
	assert.Equal(t, "First review (spaced repetition)", SessionReview1.DefaultNote())
	assert.Equal(t, "Final review before exam", SessionReview2.DefaultNote())
}
