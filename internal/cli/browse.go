package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// browserChromeHeight is the number of lines used by the title and footer.
const browserChromeHeight = 4

type browserKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	First   key.Binding
	Last    key.Binding
	Overall key.Binding
	Quit    key.Binding
}

func newBrowserKeyMap() browserKeyMap {
	return browserKeyMap{
		Next:    key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→", "next day")),
		Prev:    key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←", "prev day")),
		First:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		Last:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Overall: key.NewBinding(key.WithKeys("a", "tab"), key.WithHelp("a", "whole run")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Overall, k.Quit}
}

// scheduleBrowser pages through a run's schedule one study day at a time.
// The overall view shows the full run report.
type scheduleBrowser struct {
	run     *domain.PlanRun
	courses []domain.Course
	days    []time.Time
	index   int
	overall bool

	keys  browserKeyMap
	vp    viewport.Model
	width int
}

func newScheduleBrowser(run *domain.PlanRun, courses []domain.Course) scheduleBrowser {
	vp := viewport.New(0, 0)
	vp.KeyMap = browserViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := scheduleBrowser{
		run:     run,
		courses: courses,
		days:    run.Schedule.Dates(),
		keys:    newBrowserKeyMap(),
		vp:      vp,
	}
	m.overall = len(m.days) == 0
	m.refresh()
	return m
}

// browserViewportKeyMap keeps letter keys free for day navigation.
func browserViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

func (m scheduleBrowser) Init() tea.Cmd { return nil }

func (m scheduleBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-browserChromeHeight, 1)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Overall):
			if len(m.days) > 0 {
				m.overall = !m.overall
			}
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.moveTo(m.index + 1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.moveTo(m.index - 1)
			return m, nil
		case key.Matches(msg, m.keys.First):
			m.moveTo(0)
			return m, nil
		case key.Matches(msg, m.keys.Last):
			m.moveTo(len(m.days) - 1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// moveTo selects a day, clamped to the schedule, and leaves overall mode.
func (m *scheduleBrowser) moveTo(i int) {
	if len(m.days) == 0 {
		return
	}
	m.index = min(max(i, 0), len(m.days)-1)
	m.overall = false
	m.refresh()
}

func (m *scheduleBrowser) refresh() {
	m.vp.SetContent(m.content())
	m.vp.GotoTop()
}

func (m scheduleBrowser) currentDay() time.Time {
	if len(m.days) == 0 {
		return time.Time{}
	}
	return m.days[m.index]
}

func (m scheduleBrowser) content() string {
	if m.overall {
		return formatter.FormatRun(m.run, m.courses)
	}

	day := domain.FormatDate(m.currentDay())
	var sessions domain.Schedule
	for _, s := range m.run.Schedule {
		if domain.FormatDate(s.Date) == day {
			sessions = append(sessions, s)
		}
	}

	var b strings.Builder
	b.WriteString(formatter.FormatSchedule(sessions, m.run.Preferences.MaxHoursPerDay))
	b.WriteString("\n")
	b.WriteString(formatter.Header("Issues on this day"))
	b.WriteString("\n")
	b.WriteString(formatter.FormatIssues(issuesOn(m.run.Report, day)))
	return b.String()
}

func issuesOn(r domain.ValidationReport, day string) domain.ValidationReport {
	var out domain.ValidationReport
	for _, issue := range r.Issues {
		if issue.Date != nil && domain.FormatDate(*issue.Date) == day {
			out.Issues = append(out.Issues, issue)
		}
	}
	return out
}

func (m scheduleBrowser) title() string {
	if m.overall {
		return formatter.StyleHeader.Render("WHOLE RUN") + "  " + formatter.OutcomePill(m.run.Outcome)
	}
	return fmt.Sprintf("%s  %s",
		formatter.StyleHeader.Render(formatter.DayLabel(m.currentDay())),
		formatter.Dim(fmt.Sprintf("day %d of %d", m.index+1, len(m.days))),
	)
}

func (m scheduleBrowser) View() string {
	hints := make([]string, 0, len(m.keys.ShortHelp())+1)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
	}
	hints = append(hints, scrollIndicator(m.vp))

	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.width, 20)))

	return m.title() + "\n" + sep + "\n" + m.vp.View() + "\n" + strings.Join(hints, "  ")
}

// scrollIndicator returns a dim scroll position string for the footer.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	pct := int(vp.ScrollPercent() * 100)
	return formatter.Dim(fmt.Sprintf("[%d%%]", pct))
}
