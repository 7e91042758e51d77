package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var d0 = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func sample() domain.Schedule {
	return domain.Schedule{
		{Date: d0, CourseID: "math", TopicName: "Limits, part A", Hours: 2.5, Type: domain.SessionLearning, Notes: "Initial learning session (part 1/2)"},
		{Date: d0.AddDate(0, 0, 4), CourseID: "math", TopicName: "Limits, part A", Hours: 1, Type: domain.SessionReview1},
	}
}

func TestWriteCSV_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample(), WriteOptions{}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Course,Topic,Hours,Type,Notes", lines[0])
	assert.Equal(t, `2025-03-01,math,"Limits, part A",2.5,learning,Initial learning session (part 1/2)`, lines[1])
	assert.Equal(t, `2025-03-05,math,"Limits, part A",1,review_1,First review (spaced repetition)`, lines[2])
}

func TestWriteCSV_IssueHeader(t *testing.T) {
	d := d0
	report := domain.ValidationReport{Issues: []domain.ValidationIssue{
		{Severity: domain.SeverityWarning, Code: domain.IssueExamGap, Message: "Last session for math is 6 days before the exam", Date: &d},
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample(), WriteOptions{Report: &report}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# VALIDATION ISSUES:\n# [warning] exam_gap: Last session"))
	assert.Contains(t, out, "\n#\nDate,Course")
}

func TestWriteCSV_EmptyReportWritesNoHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample(), WriteOptions{Report: &domain.ValidationReport{}}))
	assert.True(t, strings.HasPrefix(buf.String(), "Date,"))
}

func TestReadCSV_RoundTrip(t *testing.T) {
	d := d0
	report := domain.ValidationReport{Issues: []domain.ValidationIssue{{Severity: domain.SeverityError, Code: domain.IssueOverload, Message: "x", Date: &d}}}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample(), WriteOptions{Report: &report}))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, sample()[0], got[0])
	assert.Equal(t, "First review (spaced repetition)", got[1].Notes)
	assert.Equal(t, domain.SessionReview1, got[1].Type)
}

func TestReadCSV_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"bad header": "When,What\n",
		"bad date":   "Date,Course,Topic,Hours,Type,Notes\n01/03/2025,math,Limits,1,learning,\n",
		"bad hours":  "Date,Course,Topic,Hours,Type,Notes\n2025-03-01,math,Limits,two,learning,\n",
		"short row":  "Date,Course,Topic,Hours,Type,Notes\n2025-03-01,math\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestReadCSV_KeepsUnknownType(t *testing.T) {
	got, err := ReadCSV(strings.NewReader("Date,Course,Topic,Hours,Type\n2025-03-01,math,Limits,1,Review_3\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.SessionType("review_3"), got[0].Type)
	assert.Empty(t, got[0].Notes)
}
