package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

type ScoringWeights struct {
	Urgency float64
	Volume  float64
	Impact  float64
}

func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Urgency: 1.0,
		Volume:  0.5,
		Impact:  0.5,
	}
}

type ReasonCode string

const (
	ReasonUrgency     ReasonCode = "URGENCY"
	ReasonVolume      ReasonCode = "VOLUME"
	ReasonGradeImpact ReasonCode = "GRADE_IMPACT"
)

type Reason struct {
	Code        ReasonCode
	Message     string
	WeightDelta float64
}

type ScoringInput struct {
	Course        domain.Course
	Index         int // insertion order, last tiebreak
	Today         time.Time
	MaxTotalPages int // largest total_pages across the course set
	Weights       ScoringWeights
}

type ScoredCourse struct {
	Course  domain.Course
	Index   int
	Score   float64
	Reasons []Reason
	Rank    int // 1-based position after SortByPriority
}

func ScoreCourse(input ScoringInput) ScoredCourse {
	result := ScoredCourse{
		Course: input.Course,
		Index:  input.Index,
	}

	var score float64
	factors := []func(ScoringInput) (float64, *Reason){
		scoreUrgency,
		scoreVolume,
		scoreGradeImpact,
	}
	for _, f := range factors {
		delta, reason := f(input)
		score += delta
		if reason != nil {
			result.Reasons = append(result.Reasons, *reason)
		}
	}

	result.Score = score
	return result
}

// PrioritizeCourses scores every course against today and returns them in
// priority order. The output is a permutation of the input.
func PrioritizeCourses(courses []domain.Course, today time.Time, weights ScoringWeights) ([]ScoredCourse, error) {
	today = domain.DateOf(today)
	maxPages := 0
	for i := range courses {
		if err := courses[i].Validate(today); err != nil {
			return nil, err
		}
		if p := courses[i].TotalPages(); p > maxPages {
			maxPages = p
		}
	}

	scored := make([]ScoredCourse, len(courses))
	for i, c := range courses {
		scored[i] = ScoreCourse(ScoringInput{
			Course:        c,
			Index:         i,
			Today:         today,
			MaxTotalPages: maxPages,
			Weights:       weights,
		})
	}
	SortByPriority(scored)
	return scored, nil
}

func scoreUrgency(input ScoringInput) (float64, *Reason) {
	days := domain.DaysBetween(input.Today, input.Course.ExamDate)
	if days < 1 {
		days = 1
	}
	delta := input.Weights.Urgency / float64(days)
	return delta, &Reason{
		Code:        ReasonUrgency,
		Message:     formatUrgencyMessage(days),
		WeightDelta: delta,
	}
}

func scoreVolume(input ScoringInput) (float64, *Reason) {
	if input.MaxTotalPages == 0 {
		return 0, nil
	}
	pages := input.Course.TotalPages()
	delta := input.Weights.Volume * float64(pages) / float64(input.MaxTotalPages)
	return delta, &Reason{
		Code:        ReasonVolume,
		Message:     fmt.Sprintf("%d pages to cover", pages),
		WeightDelta: delta,
	}
}

func scoreGradeImpact(input ScoringInput) (float64, *Reason) {
	if input.Course.Weight == 0 {
		return 0, nil
	}
	delta := input.Weights.Impact * input.Course.Weight
	return delta, &Reason{
		Code:        ReasonGradeImpact,
		Message:     fmt.Sprintf("Exam is worth %.0f%% of the grade", input.Course.Weight*100),
		WeightDelta: delta,
	}
}

func formatUrgencyMessage(days int) string {
	switch {
	case days == 1:
		return "Exam tomorrow"
	case days <= 7:
		return fmt.Sprintf("Exam in %d days", days)
	case days <= 14:
		return "Exam within two weeks"
	default:
		return "Exam is still far off"
	}
}
