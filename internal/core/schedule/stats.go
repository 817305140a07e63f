package schedule

import (
	"time"

	"focusquest/internal/core/domain"
)

// DayStats aggregates one calendar-day bucket. Breakdowns carry a
// count for every enumerated urgency and category, zeros included.
type DayStats struct {
	Total          int
	Completed      int
	CompletionRate float64
	Urgency        map[domain.Urgency]int
	Category       map[domain.Category]int
}

// ComputeDayStats summarizes a day bucket. CompletionRate is in
// [0,1] and 0 for an empty bucket.
func ComputeDayStats(tasks []domain.Task) DayStats {
	stats := DayStats{
		Urgency:  make(map[domain.Urgency]int, len(domain.Urgencies)),
		Category: make(map[domain.Category]int, len(domain.Categories)),
	}
	for _, u := range domain.Urgencies {
		stats.Urgency[u] = 0
	}
	for _, c := range domain.Categories {
		stats.Category[c] = 0
	}

	for _, task := range tasks {
		stats.Total++
		if task.Completed {
			stats.Completed++
		}
		stats.Urgency[task.Urgency]++
		stats.Category[task.Category]++
	}

	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total)
	}
	return stats
}

// streakLookbackDays bounds the backward scan.
const streakLookbackDays = 14

// ComputeStreak scans backward day by day from today. A day counts
// only if it has at least one task and every task on it is completed.
// The first day with zero tasks or any incomplete task ends the scan,
// so an empty day truncates the streak rather than being skipped.
func ComputeStreak(tasks []domain.Task, today time.Time, source DateSource) int {
	streak := 0
	day := startOfDay(today)

	for i := 0; i < streakLookbackDays; i++ {
		key := KeyFor(day.AddDate(0, 0, -i))

		total := 0
		allDone := true
		for _, task := range tasks {
			at, ok := ResolveDate(task, source)
			if !ok || KeyFor(at) != key {
				continue
			}
			total++
			if !task.Completed {
				allDone = false
			}
		}

		if total == 0 || !allDone {
			break
		}
		streak++
	}

	return streak
}

// DayCompletion is one row of the streak history panel.
type DayCompletion struct {
	Date         time.Time
	Total        int
	AnyCompleted bool
}

// CompletionHistory returns the last n days oldest-first, reporting
// how many tasks landed on each day and whether any of them were
// completed.
func CompletionHistory(tasks []domain.Task, today time.Time, n int, source DateSource) []DayCompletion {
	history := make([]DayCompletion, 0, n)
	day := startOfDay(today)

	for i := n - 1; i >= 0; i-- {
		date := day.AddDate(0, 0, -i)
		key := KeyFor(date)

		row := DayCompletion{Date: date}
		for _, task := range tasks {
			at, ok := ResolveDate(task, source)
			if !ok || KeyFor(at) != key {
				continue
			}
			row.Total++
			if task.Completed {
				row.AnyCompleted = true
			}
		}
		history = append(history, row)
	}

	return history
}
