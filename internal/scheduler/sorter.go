package scheduler

import "sort"

// SortByPriority sorts scored courses by the deterministic canonical rules
// and assigns ranks:
// 1. Score: higher first
// 2. Exam date: earliest first
// 3. Insertion order
func SortByPriority(courses []ScoredCourse) {
	sort.SliceStable(courses, func(i, j int) bool {
		a, b := courses[i], courses[j]

		if a.Score != b.Score {
			return a.Score > b.Score
		}

		if !a.Course.ExamDate.Equal(b.Course.ExamDate) {
			return a.Course.ExamDate.Before(b.Course.ExamDate)
		}

		return a.Index < b.Index
	})
	for i := range courses {
		courses[i].Rank = i + 1
	}
}
