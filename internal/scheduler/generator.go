package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

type GeneratorConfig struct {
	PagesPerHour float64
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{PagesPerHour: DefaultPagesPerHour}
}

type Generator struct {
	cfg GeneratorConfig
}

func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.PagesPerHour <= 0 {
		cfg.PagesPerHour = DefaultPagesPerHour
	}
	return &Generator{cfg: cfg}
}

type GenerateInput struct {
	Today       time.Time
	Courses     []ScoredCourse // priority order
	Preferences domain.Preferences
	// Feedback holds the previous attempt's issues; empty on a first attempt.
	Feedback []domain.ValidationIssue
}

type topicState struct {
	course    *courseState
	topic     domain.Topic
	required  int
	remaining int
	learnedOn time.Time // last learning day
	review1   time.Time
}

func (ts *topicState) reviewUnits() int { return reviewUnits(ts.required) }

type courseState struct {
	scored   ScoredCourse
	exam     time.Time
	deadline time.Time
	days     []time.Time // available days before the exam
	topics   []*topicState
	next     int
	fill     bool
	// credit is paced learning time not yet spent on a whole topic.
	credit int
}

func (c *courseState) remaining() int {
	total := 0
	for _, t := range c.topics[c.next:] {
		total += t.remaining
	}
	return total
}

// daysLeft counts the course's available days in [d, deadline].
func (c *courseState) daysLeft(d time.Time) int {
	n := 0
	for _, day := range c.days {
		if !day.Before(d) && !day.After(c.deadline) {
			n++
		}
	}
	return n
}

func (c *courseState) learningOn(d time.Time) bool {
	return d.Before(c.exam) && !d.After(c.deadline)
}

type generation struct {
	cfg      GeneratorConfig
	prefs    domain.Preferences
	fb       Feedback
	horizon  Horizon
	topicCap int // largest topic learned in a single session
	courses  []*courseState
	finished []*topicState
	sessions domain.Schedule
	load     map[string]int
}

// Generate builds a candidate schedule in two passes. Learning is allocated
// day by day in priority order, one whole topic per session unless the
// topic is larger than a day. Reviews are then placed into the room the
// learning left, first reviews before final reviews. The only failure is
// structural: the required learning volume cannot fit into the horizon.
func (g *Generator) Generate(in GenerateInput) (domain.Schedule, error) {
	today := domain.DateOf(in.Today)
	fb := NewFeedback(in.Feedback, in.Preferences)

	courses := make([]domain.Course, len(in.Courses))
	for i, sc := range in.Courses {
		courses[i] = sc.Course
	}

	horizon := NewHorizon(today, courses, in.Preferences.RestDays)
	capacity := ComputeCapacity(CapacityInput{
		Courses:        courses,
		Horizon:        horizon,
		MaxHoursPerDay: in.Preferences.MaxHoursPerDay,
		PagesPerHour:   g.cfg.PagesPerHour,
	})
	if err := capacity.Err(); err != nil {
		return nil, err
	}
	if !fb.Empty() {
		horizon = NewHorizon(today, courses, fb.restDays(in.Preferences.RestDays))
	}

	gen := &generation{
		cfg:      g.cfg,
		prefs:    in.Preferences,
		fb:       fb,
		horizon:  horizon,
		topicCap: min(toUnits(in.Preferences.MaxHoursPerDay), toUnits(domain.HardDailyLimitHours)),
		load:     make(map[string]int),
	}
	for _, sc := range in.Courses {
		cs, err := gen.newCourseState(sc)
		if err != nil {
			return nil, err
		}
		gen.courses = append(gen.courses, cs)
	}

	for _, d := range gen.horizon.AvailableDays() {
		gen.allocate(d)
	}
	gen.scheduleReviews()

	gen.annotate()
	gen.sessions.Sort()
	return gen.sessions, nil
}

func (gen *generation) newCourseState(sc ScoredCourse) (*courseState, error) {
	cs := &courseState{
		scored: sc,
		exam:   domain.DateOf(sc.Course.ExamDate),
		days:   gen.horizon.AvailableBefore(sc.Course.ExamDate),
		fill:   gen.prefs.StudyStyle.FrontLoaded() || gen.fb.frontLoad || gen.fb.fillCourses[sc.Course.ID],
	}
	if len(cs.days) == 0 {
		// Only reachable when feedback removed the course's last study days.
		return nil, &domain.UnschedulableError{CourseID: sc.Course.ID, RequiredHours: hoursOf(courseUnits(sc.Course, gen.cfg.PagesPerHour))}
	}
	cs.deadline = gen.learningDeadline(cs)

	var forced, rest []*topicState
	for _, t := range sc.Course.Topics {
		u := learningUnits(t.PageCount, gen.cfg.PagesPerHour)
		ts := &topicState{course: cs, topic: t, required: u, remaining: u}
		if gen.fb.forcedTopics[topicKey{sc.Course.ID, t.Name}] {
			forced = append(forced, ts)
		} else {
			rest = append(rest, ts)
		}
	}
	cs.topics = append(forced, rest...)
	return cs, nil
}

func courseUnits(c domain.Course, pagesPerHour float64) int {
	total := 0
	for _, t := range c.Topics {
		total += learningUnits(t.PageCount, pagesPerHour)
	}
	return total
}

// learningDeadline leaves room for both reviews after the last learning
// day: review_1 at the minimum gap and review_2 on a later day. When the
// horizon is too short, or feedback asked to relax it, learning may run up
// to the last available day before the exam.
func (gen *generation) learningDeadline(cs *courseState) time.Time {
	last := cs.days[len(cs.days)-1]
	if gen.fb.relaxDeadlines {
		return last
	}
	limit := cs.exam.AddDate(0, 0, -(domain.Review1MinGapDays + 2))
	for i := len(cs.days) - 1; i >= 0; i-- {
		if !cs.days[i].After(limit) {
			return cs.days[i]
		}
	}
	return last
}

func (gen *generation) room(d time.Time) int {
	return gen.fb.dayBudget(d, gen.prefs.MaxHoursPerDay) - gen.load[domain.FormatDate(d)]
}

func (gen *generation) allocate(d time.Time) {
	demands := make([]CourseDemand, len(gen.courses))
	for i, cs := range gen.courses {
		if !cs.learningOn(d) {
			continue
		}
		open := cs.remaining() - cs.credit
		demands[i] = CourseDemand{
			Remaining: open,
			Pace:      ceilDiv(open, cs.daysLeft(d)),
			Deadline:  d.Equal(cs.deadline),
			Fill:      cs.fill,
			Score:     cs.scored.Score,
		}
	}

	alloc := AllocateDay(demands, gen.room(d))
	for i, cs := range gen.courses {
		if cs.learningOn(d) {
			gen.learn(cs, d, alloc[i])
		}
	}
}

// learn converts the course's credit into sessions on d. A topic that fits
// into a day is only ever emitted whole, once the credit covers it and the
// day has room; larger topics are learned in parts. On the deadline every
// remaining topic is emitted regardless of room.
func (gen *generation) learn(cs *courseState, d time.Time, units int) {
	cs.credit += units
	deadline := d.Equal(cs.deadline)
	for cs.next < len(cs.topics) {
		ts := cs.topics[cs.next]
		var take int
		switch {
		case deadline:
			take = ts.remaining
		case ts.required > gen.topicCap:
			take = min(ts.remaining, cs.credit, gen.room(d))
		case cs.credit >= ts.remaining && gen.room(d) >= ts.remaining:
			take = ts.remaining
		}
		if take <= 0 {
			return
		}
		gen.emit(domain.DaySession{
			Date:      d,
			CourseID:  cs.scored.Course.ID,
			TopicName: ts.topic.Name,
			Hours:     hoursOf(take),
			Type:      domain.SessionLearning,
		}, take)
		cs.credit = max(0, cs.credit-take)
		ts.remaining -= take
		ts.learnedOn = d
		if ts.remaining > 0 {
			return
		}
		cs.next++
		gen.finished = append(gen.finished, ts)
	}
}

func (gen *generation) emit(s domain.DaySession, units int) {
	gen.sessions = append(gen.sessions, s)
	gen.load[domain.FormatDate(s.Date)] += units
}

// scheduleReviews places every first review, in the order topics finished,
// before any final review.
func (gen *generation) scheduleReviews() {
	for _, ts := range gen.finished {
		ts.review1 = gen.pickReview1(ts)
		gen.emitReview(ts, ts.review1, domain.SessionReview1)
	}
	for _, ts := range gen.finished {
		gen.emitReview(ts, gen.pickReview2(ts), domain.SessionReview2)
	}
}

func (gen *generation) emitReview(ts *topicState, d time.Time, typ domain.SessionType) {
	units := ts.reviewUnits()
	gen.emit(domain.DaySession{
		Date:      d,
		CourseID:  ts.course.scored.Course.ID,
		TopicName: ts.topic.Name,
		Hours:     hoursOf(units),
		Type:      typ,
	}, units)
}

func (gen *generation) withRoom(days []time.Time, units int) []time.Time {
	var out []time.Time
	for _, d := range days {
		if gen.room(d) >= units {
			out = append(out, d)
		}
	}
	return out
}

// pickReview1 prefers the least loaded day with room inside the spacing
// window (earliest on ties), then the day with room whose offset is
// closest to the minimum gap. Without room anywhere it falls back to the
// same choices ignoring the budget, and as a last resort the learning day.
func (gen *generation) pickReview1(ts *topicState) time.Time {
	units := ts.reviewUnits()
	var window, later []time.Time
	for _, d := range ts.course.days {
		if !d.After(ts.learnedOn) {
			continue
		}
		later = append(later, d)
		gap := domain.DaysBetween(ts.learnedOn, d)
		if gap >= domain.Review1MinGapDays && gap <= domain.Review1MaxGapDays {
			window = append(window, d)
		}
	}
	if open := gen.withRoom(window, units); len(open) > 0 {
		return gen.leastLoaded(open, false)
	}
	if open := gen.withRoom(later, units); len(open) > 0 {
		return closestToGap(ts.learnedOn, open)
	}
	if len(window) > 0 {
		return gen.leastLoaded(window, false)
	}
	if len(later) == 0 {
		return ts.learnedOn
	}
	return closestToGap(ts.learnedOn, later)
}

func closestToGap(learnedOn time.Time, days []time.Time) time.Time {
	best := days[0]
	bestDist := abs(domain.DaysBetween(learnedOn, best) - domain.Review1MinGapDays)
	for _, d := range days[1:] {
		if dist := abs(domain.DaysBetween(learnedOn, d) - domain.Review1MinGapDays); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

// pickReview2 prefers the least loaded day with room among the last few
// available days before the exam that fall after review_1 (latest on
// ties). When those are full it takes the nearest earlier available day
// with room, still after review_1.
func (gen *generation) pickReview2(ts *topicState) time.Time {
	units := ts.reviewUnits()
	days := ts.course.days
	start := max(0, len(days)-domain.Review2WindowDays)
	var window []time.Time
	for _, d := range days[start:] {
		if d.After(ts.review1) {
			window = append(window, d)
		}
	}
	if open := gen.withRoom(window, units); len(open) > 0 {
		return gen.leastLoaded(open, true)
	}
	for d := days[start].AddDate(0, 0, -1); d.After(ts.review1); d = d.AddDate(0, 0, -1) {
		if gen.horizon.IsAvailable(d) && gen.room(d) >= units {
			return d
		}
	}
	if len(window) == 0 {
		return ts.review1
	}
	return gen.leastLoaded(window, true)
}

func (gen *generation) leastLoaded(days []time.Time, preferLatest bool) time.Time {
	best := days[0]
	bestLoad := gen.load[domain.FormatDate(best)]
	for _, d := range days[1:] {
		l := gen.load[domain.FormatDate(d)]
		if l < bestLoad || (l == bestLoad && preferLatest) {
			best, bestLoad = d, l
		}
	}
	return best
}

// annotate fills default notes, numbering learning parts when a topic's
// learning spans several days.
func (gen *generation) annotate() {
	parts := make(map[topicKey]int)
	for _, s := range gen.sessions {
		if s.Type == domain.SessionLearning {
			parts[topicKey{s.CourseID, s.TopicName}]++
		}
	}
	order := make([]int, len(gen.sessions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return gen.sessions[order[a]].Date.Before(gen.sessions[order[b]].Date)
	})
	seen := make(map[topicKey]int)
	for _, i := range order {
		s := &gen.sessions[i]
		s.Notes = s.Type.DefaultNote()
		if s.Type != domain.SessionLearning {
			continue
		}
		k := topicKey{s.CourseID, s.TopicName}
		if n := parts[k]; n > 1 {
			seen[k]++
			s.Notes = fmt.Sprintf("%s (part %d/%d)", s.Notes, seen[k], n)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
