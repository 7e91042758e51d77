package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByPriority_ScoreFirst(t *testing.T) {
	courses := []ScoredCourse{
		{Course: course("a", 5, 0, 1), Index: 0, Score: 1},
		{Course: course("b", 9, 0, 1), Index: 1, Score: 3},
	}
	SortByPriority(courses)
	assert.Equal(t, "b", courses[0].Course.ID)
}

func TestSortByPriority_TieBreakByExamDate(t *testing.T) {
	courses := []ScoredCourse{
		{Course: course("later", 9, 0, 1), Index: 0, Score: 2},
		{Course: course("sooner", 4, 0, 1), Index: 1, Score: 2},
	}
	SortByPriority(courses)
	assert.Equal(t, "sooner", courses[0].Course.ID)
}

func TestSortByPriority_TieBreakByInsertionOrder(t *testing.T) {
	courses := []ScoredCourse{
		{Course: course("second", 4, 0, 1), Index: 1, Score: 2},
		{Course: course("first", 4, 0, 1), Index: 0, Score: 2},
	}
	SortByPriority(courses)
	assert.Equal(t, "first", courses[0].Course.ID)
	assert.Equal(t, 1, courses[0].Rank)
	assert.Equal(t, 2, courses[1].Rank)
}
