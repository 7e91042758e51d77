package scheduler

import "math"

// DefaultPagesPerHour converts topic volume into study hours when no
// explicit rate is configured.
const DefaultPagesPerHour = 10.0

// Hours are handled internally as whole half-hour units so that allocation
// arithmetic stays exact. Daily budgets round down to the unit, so 4.3
// hours per day plans 4.0; budgets below one unit are rejected by
// Preferences.Validate.
const unitsPerHour = 2

func toUnits(hours float64) int {
	if hours <= 0 {
		return 0
	}
	return int(math.Floor(hours*unitsPerHour + 1e-9))
}

func hoursOf(units int) float64 {
	return float64(units) / unitsPerHour
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

// learningUnits estimates the half-hour units needed to learn a topic.
// Every topic costs at least one unit, even an empty one.
func learningUnits(pages int, pagesPerHour float64) int {
	if pagesPerHour <= 0 {
		pagesPerHour = DefaultPagesPerHour
	}
	u := int(math.Ceil(float64(pages)/pagesPerHour*unitsPerHour - 1e-9))
	if u < 1 {
		return 1
	}
	return u
}

// reviewUnits sizes a review at a quarter of the learning effort, clamped
// to [0.5h, 1.5h].
func reviewUnits(learning int) int {
	u := int(math.Round(float64(learning) * 0.25))
	return clamp(u, 1, 3)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
