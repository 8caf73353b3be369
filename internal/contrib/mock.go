package contrib

import "math/rand"

// MockGrid returns a deterministic placeholder calendar used when real data
// cannot be loaded. Weekdays are busier than weekends.
func MockGrid(year int, seed int64) *Grid {
	rng := rand.New(rand.NewSource(seed))
	g := NewGrid(53, DaysPerWeek, year)
	for w := range g.Levels {
		for d := range g.Levels[w] {
			weight := 5
			if d == 0 || d == 6 {
				weight = 2
			}
			lvl := rng.Intn(weight + 1)
			if lvl > MaxLevel {
				lvl = MaxLevel
			}
			g.Levels[w][d] = lvl
			g.Counts[w][d] = ApproximateCount(lvl)
		}
	}
	return g
}

// MockStats computes stats over a mock grid's counts in calendar order.
func MockStats(g *Grid) Stats {
	var s Stats
	streak := 0
	for w := range g.Weeks() {
		for d := range g.Days() {
			count, _ := g.Count(w, d)
			s.TotalContributions += count
			if count > s.MaxContribution {
				s.MaxContribution = count
			}
			if count > 0 {
				streak++
				if streak > s.LongestStreak {
					s.LongestStreak = streak
				}
			} else {
				streak = 0
			}
		}
	}
	return s
}
