package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func browserRun() *domain.PlanRun {
	day1 := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	return &domain.PlanRun{
		ID:            "run-1",
		StartDate:     day1,
		Outcome:       domain.StateAccepted,
		Iterations:    1,
		MaxIterations: 3,
		Preferences:   domain.Preferences{MaxHoursPerDay: 4, StudyStyle: domain.StyleBalanced},
		Schedule: domain.Schedule{
			{Date: day1, CourseID: "math", TopicName: "Limits", Hours: 2, Type: domain.SessionLearning},
			{Date: day2, CourseID: "math", TopicName: "Derivatives", Hours: 3, Type: domain.SessionLearning},
		},
		Report: domain.ValidationReport{Issues: []domain.ValidationIssue{
			{Severity: domain.SeverityWarning, Code: domain.IssuePreferenceOverload, Message: "tuesday is heavy", Date: &day2},
		}},
	}
}

func sizedBrowser(t *testing.T) scheduleBrowser {
	t.Helper()
	m, cmd := newScheduleBrowser(browserRun(), nil).Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	require.Nil(t, cmd)
	return m.(scheduleBrowser)
}

func press(m scheduleBrowser, msg tea.KeyMsg) (scheduleBrowser, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(scheduleBrowser), cmd
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestScheduleBrowser_StartsOnFirstDay(t *testing.T) {
	m := sizedBrowser(t)

	view := m.View()
	assert.Contains(t, view, "Mon 2025-03-03")
	assert.Contains(t, view, "day 1 of 2")
	assert.Contains(t, view, "Limits")
	assert.NotContains(t, view, "Derivatives")
	assert.Contains(t, view, "No issues found.")
}

func TestScheduleBrowser_NavigatesDaysAndClamps(t *testing.T) {
	m := sizedBrowser(t)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	view := m.View()
	assert.Contains(t, view, "day 2 of 2")
	assert.Contains(t, view, "Derivatives")
	assert.Contains(t, view, "tuesday is heavy")

	m, _ = press(m, runeKey("l"))
	assert.Equal(t, 1, m.index, "clamped at the last day")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(m, runeKey("h"))
	assert.Equal(t, 0, m.index, "clamped at the first day")

	m, _ = press(m, runeKey("G"))
	assert.Equal(t, 1, m.index)
	m, _ = press(m, runeKey("g"))
	assert.Equal(t, 0, m.index)
}

func TestScheduleBrowser_ToggleWholeRun(t *testing.T) {
	m := sizedBrowser(t)

	m, _ = press(m, runeKey("a"))
	view := m.View()
	assert.Contains(t, view, "WHOLE RUN")
	assert.Contains(t, view, "VALIDATION")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.False(t, m.overall, "day navigation leaves the overall view")
	assert.Contains(t, m.View(), "day 2 of 2")
}

func TestScheduleBrowser_EmptyScheduleShowsWholeRun(t *testing.T) {
	run := browserRun()
	run.Schedule = nil
	m, _ := newScheduleBrowser(run, nil).Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	b := m.(scheduleBrowser)

	assert.True(t, b.overall)
	b, _ = press(b, runeKey("a"))
	assert.True(t, b.overall, "nothing to toggle to")
	assert.Contains(t, b.View(), "No sessions scheduled.")
}

func TestScheduleBrowser_Quit(t *testing.T) {
	m := sizedBrowser(t)

	_, cmd := press(m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
