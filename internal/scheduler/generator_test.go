package scheduler

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, courses []domain.Course, prefs domain.Preferences, feedback []domain.ValidationIssue) domain.Schedule {
	t.Helper()
	scored, err := PrioritizeCourses(courses, today, DefaultWeights())
	require.NoError(t, err)
	s, err := NewGenerator(DefaultGeneratorConfig()).Generate(GenerateInput{
		Today:       today,
		Courses:     scored,
		Preferences: prefs,
		Feedback:    feedback,
	})
	require.NoError(t, err)
	return s
}

func sessionsOfType(s domain.Schedule, typ domain.SessionType) []domain.DaySession {
	var out []domain.DaySession
	for _, sess := range s {
		if sess.Type == typ {
			out = append(out, sess)
		}
	}
	return out
}

// uniformCourse has n topics of the same size.
func uniformCourse(id string, examInDays, n, pages int) domain.Course {
	c := domain.Course{ID: id, ExamDate: today.AddDate(0, 0, examInDays), Weight: 0.5}
	for i := 0; i < n; i++ {
		c.Topics = append(c.Topics, domain.Topic{Name: fmt.Sprintf("%s-%02d", id, i+1), PageCount: pages})
	}
	return c
}

func TestGenerate_SingleCourseScenario(t *testing.T) {
	c := course("math", 10, 0.5, 100)
	s := generate(t, []domain.Course{c}, domain.Preferences{MaxHoursPerDay: 4}, nil)

	learning := sessionsOfType(s, domain.SessionLearning)
	require.NotEmpty(t, learning)
	var learned float64
	var last time.Time
	for _, l := range learning {
		learned += l.Hours
		assert.LessOrEqual(t, l.Hours, 4.0)
		if l.Date.After(last) {
			last = l.Date
		}
	}
	assert.Equal(t, 10.0, learned)

	r1 := sessionsOfType(s, domain.SessionReview1)
	require.Len(t, r1, 1)
	gap := domain.DaysBetween(last, r1[0].Date)
	assert.GreaterOrEqual(t, gap, 3)
	assert.LessOrEqual(t, gap, 5)

	r2 := sessionsOfType(s, domain.SessionReview2)
	require.Len(t, r2, 1)
	assert.True(t, r2[0].Date.Before(c.ExamDate))
	assert.LessOrEqual(t, domain.DaysBetween(r2[0].Date, c.ExamDate), 3)
	assert.True(t, r2[0].Date.After(r1[0].Date))

	for date, hours := range s.HoursByDate() {
		assert.LessOrEqual(t, hours, 4.0, "date %s", date)
	}
}

func TestGenerate_ZeroCapacityIsUnschedulable(t *testing.T) {
	scored, err := PrioritizeCourses([]domain.Course{course("math", 10, 0.5, 10)}, today, DefaultWeights())
	require.NoError(t, err)

	_, err = NewGenerator(DefaultGeneratorConfig()).Generate(GenerateInput{
		Today:       today,
		Courses:     scored,
		Preferences: domain.Preferences{MaxHoursPerDay: 0},
	})
	var unsched *domain.UnschedulableError
	require.True(t, errors.As(err, &unsched))
	assert.Equal(t, domain.ErrCodeUnschedulable, unsched.Code())
	assert.Equal(t, 1.0, unsched.RequiredHours)
}

func TestGenerate_NoStudyDayBeforeExamIsUnschedulable(t *testing.T) {
	rest, err := domain.ParseRestDays([]string{today.Weekday().String()})
	require.NoError(t, err)
	scored, err := PrioritizeCourses([]domain.Course{
		course("quiz", 1, 0.1, 10),
		course("final", 20, 0.9, 10),
	}, today, DefaultWeights())
	require.NoError(t, err)

	_, err = NewGenerator(DefaultGeneratorConfig()).Generate(GenerateInput{
		Today:       today,
		Courses:     scored,
		Preferences: domain.Preferences{MaxHoursPerDay: 6, RestDays: rest},
	})
	var unsched *domain.UnschedulableError
	require.True(t, errors.As(err, &unsched))
	assert.Equal(t, "quiz", unsched.CourseID)
}

func TestGenerate_SkipsRestDays(t *testing.T) {
	rest, err := domain.ParseRestDays([]string{"sunday", "2025-03-04"})
	require.NoError(t, err)
	s := generate(t, []domain.Course{course("bio", 14, 0.3, 40, 30, 20)},
		domain.Preferences{MaxHoursPerDay: 3, RestDays: rest}, nil)

	for _, sess := range s {
		assert.False(t, rest.Contains(sess.Date), "session on rest day %s", domain.FormatDate(sess.Date))
	}
}

func TestGenerate_LearningPartsAreNumbered(t *testing.T) {
	s := generate(t, []domain.Course{course("math", 10, 0.5, 100)}, domain.Preferences{MaxHoursPerDay: 4}, nil)
	learning := sessionsOfType(s, domain.SessionLearning)
	require.Greater(t, len(learning), 1)
	assert.Contains(t, learning[0].Notes, "(part 1/")
	assert.Equal(t, "First review (spaced repetition)", sessionsOfType(s, domain.SessionReview1)[0].Notes)
}

func TestGenerate_TopicThatFitsADayIsLearnedOnce(t *testing.T) {
	c := course("math", 20, 0.5, 20)
	s := generate(t, []domain.Course{c}, domain.Preferences{MaxHoursPerDay: 4}, nil)

	learning := sessionsOfType(s, domain.SessionLearning)
	require.Len(t, learning, 1)
	assert.Equal(t, 2.0, learning[0].Hours)
	assert.Equal(t, "Initial learning session", learning[0].Notes)
}

func TestGenerate_ReviewsStayWithinDailyBudget(t *testing.T) {
	c := uniformCourse("bio", 60, 54, 10)
	s := generate(t, []domain.Course{c}, domain.Preferences{MaxHoursPerDay: 4}, nil)

	for date, hours := range s.HoursByDate() {
		assert.LessOrEqual(t, hours, 4.0, "date %s", date)
	}
	require.Len(t, sessionsOfType(s, domain.SessionLearning), 54)
	require.Len(t, sessionsOfType(s, domain.SessionReview1), 54)
	review2 := sessionsOfType(s, domain.SessionReview2)
	require.Len(t, review2, 54)

	inWindow := 0
	for _, r := range review2 {
		if domain.DaysBetween(r.Date, c.ExamDate) <= domain.Review2WindowDays {
			inWindow++
		}
	}
	assert.GreaterOrEqual(t, inWindow, 20)
	assert.Less(t, inWindow, 54, "reviews that do not fit the final days move earlier")
}

func TestGenerate_OverloadFeedbackFreesTheDate(t *testing.T) {
	c := uniformCourse("chem", 30, 20, 20)
	prefs := domain.Preferences{MaxHoursPerDay: 4, StudyStyle: domain.StyleIntensive}
	busy := today.AddDate(0, 0, 1)

	first := generate(t, []domain.Course{c}, prefs, nil)
	require.Equal(t, 4.0, first.HoursByDate()[domain.FormatDate(busy)])

	second := generate(t, []domain.Course{c}, prefs, []domain.ValidationIssue{{
		Severity: domain.SeverityError, Code: domain.IssueOverload, Date: &busy,
	}})
	assert.LessOrEqual(t, second.HoursByDate()[domain.FormatDate(busy)], 2.0)
	assert.Len(t, sessionsOfType(second, domain.SessionLearning), 20, "volume moves to other days")
}

func TestGenerate_IntensiveFrontLoads(t *testing.T) {
	c := course("math", 20, 0.5, 60)
	balanced := generate(t, []domain.Course{c}, domain.Preferences{MaxHoursPerDay: 4, StudyStyle: domain.StyleBalanced}, nil)
	intensive := generate(t, []domain.Course{c}, domain.Preferences{MaxHoursPerDay: 4, StudyStyle: domain.StyleIntensive}, nil)

	first := func(s domain.Schedule) float64 { return s.HoursByDate()[domain.FormatDate(today)] }
	assert.Equal(t, 4.0, first(intensive))
	assert.Less(t, first(balanced), first(intensive))
}

func TestGenerate_OverloadFeedbackCapsDays(t *testing.T) {
	courses := []domain.Course{
		course("a", 3, 0.5, 60),
		course("b", 5, 0.5, 100),
	}
	prefs := domain.Preferences{MaxHoursPerDay: 10}

	first := generate(t, courses, prefs, nil)
	var feedback []domain.ValidationIssue
	for date, hours := range first.HoursByDate() {
		if hours > domain.HardDailyLimitHours {
			d, err := domain.ParseDate(date)
			require.NoError(t, err)
			feedback = append(feedback, domain.ValidationIssue{
				Severity: domain.SeverityError, Code: domain.IssueOverload, Date: &d,
			})
		}
	}
	require.NotEmpty(t, feedback, "first attempt should overload a shared date")

	second := generate(t, courses, prefs, feedback)
	overloaded := 0
	for _, hours := range second.HoursByDate() {
		if hours > domain.HardDailyLimitHours {
			overloaded++
		}
	}
	assert.LessOrEqual(t, overloaded, len(feedback))
}

func TestGenerate_MissingTopicFeedbackSchedulesTopicFirst(t *testing.T) {
	c := course("hist", 12, 0.5, 30, 30, 30)
	target := c.Topics[2].Name
	s := generate(t, []domain.Course{c}, domain.Preferences{MaxHoursPerDay: 3}, []domain.ValidationIssue{{
		Severity: domain.SeverityError, Code: domain.IssueMissingTopic, CourseID: "hist", TopicName: target,
	}})
	learning := sessionsOfType(s, domain.SessionLearning)
	require.NotEmpty(t, learning)
	assert.Equal(t, target, learning[0].TopicName)
}

func TestGenerate_Deterministic(t *testing.T) {
	courses := []domain.Course{
		course("a", 9, 0.2, 35, 12),
		course("b", 15, 0.6, 80, 40, 5),
	}
	prefs := domain.Preferences{MaxHoursPerDay: 5}
	assert.Equal(t, generate(t, courses, prefs, nil), generate(t, courses, prefs, nil))
}

func checkInvariants(t *testing.T, trial int, courses []domain.Course, prefs domain.Preferences, s domain.Schedule) {
	t.Helper()
	idx := domain.CourseIndex(courses)
	for _, sess := range s {
		c := idx[sess.CourseID]
		require.NotNil(t, c)
		assert.True(t, sess.Date.Before(c.ExamDate), "trial %d: session on/after exam", trial)
		assert.False(t, sess.Date.Before(today), "trial %d: session before start", trial)
		assert.Greater(t, sess.Hours, 0.0)
	}

	topicCap := min(prefs.MaxHoursPerDay, domain.HardDailyLimitHours)
	for _, c := range courses {
		for _, topic := range c.Topics {
			want := hoursOf(learningUnits(topic.PageCount, DefaultPagesPerHour))
			var learningHours float64
			learning, reviews := 0, 0
			for _, sess := range s.ForTopic(c.ID, topic.Name) {
				if sess.Type == domain.SessionLearning {
					learningHours += sess.Hours
					learning++
				} else {
					reviews++
				}
			}
			assert.Equal(t, want, learningHours, "trial %d: %s/%s learning volume", trial, c.ID, topic.Name)
			if want <= topicCap {
				assert.Equal(t, 1, learning, "trial %d: %s/%s fits a day", trial, c.ID, topic.Name)
			}
			assert.Equal(t, 2, reviews, "trial %d: %s/%s reviews", trial, c.ID, topic.Name)
		}
	}
}

// TestGenerate_Invariants property-tests coverage and temporal validity over
// random course sets with ample capacity.
func TestGenerate_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 100; trial++ {
		n := rng.Intn(3) + 1
		courses := make([]domain.Course, n)
		for i := range courses {
			pages := make([]int, rng.Intn(4)+1)
			for j := range pages {
				pages[j] = rng.Intn(21)
			}
			courses[i] = course("c"+string(rune('a'+i)), rng.Intn(25)+8, rng.Float64(), pages...)
		}
		prefs := domain.Preferences{MaxHoursPerDay: float64(rng.Intn(5) + 4)}

		checkInvariants(t, trial, courses, prefs, generate(t, courses, prefs, nil))
	}
}

// TestGenerate_ManySmallTopics covers the regime where reviews outnumber
// the room in the final days and topics are far smaller than a day.
func TestGenerate_ManySmallTopics(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	styles := []domain.StudyStyle{domain.StyleBalanced, domain.StyleIntensive}

	for trial := 0; trial < 60; trial++ {
		courses := make([]domain.Course, rng.Intn(2)+1)
		for i := range courses {
			courses[i] = uniformCourse("c"+string(rune('a'+i)), rng.Intn(30)+40, rng.Intn(16)+10, rng.Intn(10)+1)
		}
		prefs := domain.Preferences{
			MaxHoursPerDay: float64(rng.Intn(3) + 4),
			StudyStyle:     styles[rng.Intn(len(styles))],
		}

		s := generate(t, courses, prefs, nil)
		checkInvariants(t, trial, courses, prefs, s)
		for date, hours := range s.HoursByDate() {
			assert.LessOrEqual(t, hours, domain.HardDailyLimitHours, "trial %d: %s overloaded", trial, date)
		}
	}
}
