package state

import (
	"math"

	"tdo/internal/service"
)

// Stats summarizes completion over a set of tasks.
type Stats struct {
	Total     int
	Active    int
	Completed int

	// Percent is round(100 * Completed / Total), and 0 when Total is 0.
	Percent int
}

// PriorityStats is the completion summary for one priority level.
type PriorityStats struct {
	Priority service.Priority
	Stats
}

// Summarize computes completion stats over tasks.
func Summarize(tasks []service.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		} else {
			s.Active++
		}
	}
	s.Percent = percent(s.Completed, s.Total)
	return s
}

// ByPriority computes per-priority completion stats, high first.
func ByPriority(tasks []service.Task) []PriorityStats {
	order := []service.Priority{
		service.PriorityHigh,
		service.PriorityMedium,
		service.PriorityLow,
	}

	byLevel := make(map[service.Priority][]service.Task)
	for _, t := range tasks {
		byLevel[t.Priority] = append(byLevel[t.Priority], t)
	}

	out := make([]PriorityStats, 0, len(order))
	for _, p := range order {
		out = append(out, PriorityStats{Priority: p, Stats: Summarize(byLevel[p])})
	}
	return out
}

// percent computes round(100 * c / n), defined as 0 for n == 0.
func percent(c, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(c) / float64(n) * 100))
}
