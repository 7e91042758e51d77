package scheduler

// CourseDemand is one course's learning need on a single day, in
// half-hour units.
type CourseDemand struct {
	Remaining int     // learning units still to schedule
	Pace      int     // units needed today to finish by the deadline
	Deadline  bool    // today is the course's last learning day
	Fill      bool    // course may take discretionary units beyond its pace
	Score     float64 // priority score, drives proportional fill
}

// AllocateDay distributes a day's budget across courses given in priority
// order. The mandatory pass serves each course its pace in priority order;
// a course on its deadline day receives all its remaining units even past
// the budget. The fill pass hands leftover units to Fill courses in
// proportion to their score (highest averages), so higher priority courses
// get more of the day without starving the rest.
func AllocateDay(demands []CourseDemand, budget int) []int {
	alloc := make([]int, len(demands))
	if budget < 0 {
		budget = 0
	}

	// First pass: pace, priority order
	for i, d := range demands {
		if d.Remaining <= 0 {
			continue
		}
		if d.Deadline {
			alloc[i] = d.Remaining
			budget -= d.Remaining
			if budget < 0 {
				budget = 0
			}
			continue
		}
		take := min(d.Pace, d.Remaining, budget)
		if take > 0 {
			alloc[i] = take
			budget -= take
		}
	}

	// Second pass: proportional fill
	for budget > 0 {
		best := -1
		var bestQuot float64
		for i, d := range demands {
			if !d.Fill || d.Remaining-alloc[i] <= 0 {
				continue
			}
			q := fillWeight(d.Score) / float64(alloc[i]+1)
			if best < 0 || q > bestQuot {
				best, bestQuot = i, q
			}
		}
		if best < 0 {
			break
		}
		alloc[best]++
		budget--
	}
	return alloc
}

func fillWeight(score float64) float64 {
	if score <= 0 {
		return 1e-6
	}
	return score
}
