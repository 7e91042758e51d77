package scheduler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocateDay_PaceInPriorityOrder(t *testing.T) {
	alloc := AllocateDay([]CourseDemand{
		{Remaining: 10, Pace: 4},
		{Remaining: 10, Pace: 4},
	}, 6)
	assert.Equal(t, []int{4, 2}, alloc)
}

func TestAllocateDay_DeadlineTakesEverything(t *testing.T) {
	alloc := AllocateDay([]CourseDemand{
		{Remaining: 12, Pace: 12, Deadline: true},
		{Remaining: 10, Pace: 2},
	}, 8)
	assert.Equal(t, 12, alloc[0], "deadline day schedules all remaining units")
	assert.Equal(t, 0, alloc[1], "budget already spent")
}

func TestAllocateDay_FillIsProportionalToScore(t *testing.T) {
	alloc := AllocateDay([]CourseDemand{
		{Remaining: 100, Fill: true, Score: 3},
		{Remaining: 100, Fill: true, Score: 1},
	}, 8)
	assert.Equal(t, []int{6, 2}, alloc)
}

func TestAllocateDay_FillRespectsRemaining(t *testing.T) {
	alloc := AllocateDay([]CourseDemand{
		{Remaining: 1, Fill: true, Score: 5},
		{Remaining: 100, Fill: true, Score: 1},
	}, 8)
	assert.Equal(t, []int{1, 7}, alloc)
}

func TestAllocateDay_NoFillWithoutFlag(t *testing.T) {
	alloc := AllocateDay([]CourseDemand{{Remaining: 20, Pace: 2, Score: 1}}, 8)
	assert.Equal(t, []int{2}, alloc)
}

// TestAllocateDay_Invariants property-tests the allocation bounds: no course
// receives more than it needs, and the budget is only exceeded by what courses
// on their deadline day take.
func TestAllocateDay_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 300; trial++ {
		budget := rng.Intn(20)
		demands := make([]CourseDemand, rng.Intn(6)+1)
		for i := range demands {
			rem := rng.Intn(30)
			demands[i] = CourseDemand{
				Remaining: rem,
				Pace:      rng.Intn(rem + 1),
				Deadline:  rng.Intn(5) == 0,
				Fill:      rng.Intn(2) == 0,
				Score:     rng.Float64() * 3,
			}
		}

		alloc := AllocateDay(demands, budget)

		total, deadlineUnits := 0, 0
		for i, d := range demands {
			assert.GreaterOrEqual(t, alloc[i], 0, "trial %d", trial)
			assert.LessOrEqual(t, alloc[i], d.Remaining, "trial %d: course %d over-allocated", trial, i)
			if d.Deadline {
				assert.Equal(t, d.Remaining, alloc[i], "trial %d: deadline course %d not completed", trial, i)
				deadlineUnits += alloc[i]
			}
			total += alloc[i]
		}
		assert.LessOrEqual(t, total, budget+deadlineUnits,
			"trial %d: total %d exceeds budget %d", trial, total, budget)
	}
}
