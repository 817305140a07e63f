// Package schedule holds the pure date-bucketing and rescheduling
// logic behind the daily, weekly, and monthly planner views. Dates are
// compared in local time even though stored values are UTC timestamps;
// buckets must match the calendar day the user perceives.
package schedule

import (
	"sort"
	"time"

	"focusquest/internal/core/domain"
)

// DateKey identifies one local calendar day, formatted yyyy-mm-dd.
type DateKey string

const dateKeyLayout = "2006-01-02"

func KeyFor(t time.Time) DateKey {
	return DateKey(t.Local().Format(dateKeyLayout))
}

// DateSource selects which of the two coexisting date models a view
// reads. Legacy single-deadline views use SourceDeadline; interval
// aware views use SourceSchedule. The two paths are kept separate on
// purpose: both models are live in the data.
type DateSource int

const (
	// SourceSchedule reads the end of the scheduled interval and falls
	// back to the legacy deadline. A start time alone never places a
	// task; such tasks stay unscheduled.
	SourceSchedule DateSource = iota
	// SourceDeadline reads only the legacy deadline field.
	SourceDeadline
)

// ResolveDate returns the task's calendar-placement time under the
// given source, or false when the task is unscheduled in that view.
func ResolveDate(task domain.Task, source DateSource) (time.Time, bool) {
	switch source {
	case SourceDeadline:
		if task.Deadline != nil {
			return *task.Deadline, true
		}
		return time.Time{}, false
	default:
		if task.EndTime != nil {
			return *task.EndTime, true
		}
		if task.Deadline != nil {
			return *task.Deadline, true
		}
		return time.Time{}, false
	}
}

// GroupByDate buckets tasks by local calendar date, keeping only the
// visible days. Bucket order is input order; callers sort as needed.
// Tasks with no resolvable date are excluded (see Unscheduled).
func GroupByDate(tasks []domain.Task, visibleDays []time.Time, source DateSource) map[DateKey][]domain.Task {
	groups := make(map[DateKey][]domain.Task, len(visibleDays))
	for _, day := range visibleDays {
		groups[KeyFor(day)] = []domain.Task{}
	}

	for _, task := range tasks {
		at, ok := ResolveDate(task, source)
		if !ok {
			continue
		}
		key := KeyFor(at)
		if bucket, visible := groups[key]; visible {
			groups[key] = append(bucket, task)
		}
	}

	return groups
}

// Unscheduled returns the tasks that cannot be placed on a calendar:
// deadline and end time both absent.
func Unscheduled(tasks []domain.Task) []domain.Task {
	var out []domain.Task
	for _, task := range tasks {
		if task.Deadline == nil && task.EndTime == nil {
			out = append(out, task)
		}
	}
	return out
}

var urgencyRank = map[domain.Urgency]int{
	domain.UrgencyHigh:   0,
	domain.UrgencyMedium: 1,
	domain.UrgencyLow:    2,
}

// SortBucket orders a day's tasks ascending by end time, urgency as
// tie-break (high before medium before low). Tasks without an end time
// sink to the back.
func SortBucket(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		ti, tj := tasks[i], tasks[j]
		switch {
		case ti.EndTime == nil && tj.EndTime == nil:
			return urgencyRank[ti.Urgency] < urgencyRank[tj.Urgency]
		case ti.EndTime == nil:
			return false
		case tj.EndTime == nil:
			return true
		}
		if !ti.EndTime.Equal(*tj.EndTime) {
			return ti.EndTime.Before(*tj.EndTime)
		}
		return urgencyRank[ti.Urgency] < urgencyRank[tj.Urgency]
	})
}

// Reschedule moves a task to the target calendar date, preserving the
// existing time-of-day down to the nanosecond. Only the date portion
// changes. It reports false, with the task unchanged, when the task
// already sits on the target date, so callers can skip the redundant
// mutation. When both interval endpoints exist the start moves by the
// same whole-day delta as the end, keeping the derived duration.
func Reschedule(task domain.Task, target time.Time) (domain.Task, bool) {
	current, ok := ResolveDate(task, SourceSchedule)
	if !ok {
		return task, false
	}

	moved := rebaseDate(current, target)
	if KeyFor(current) == KeyFor(moved) {
		return task, false
	}

	switch {
	case task.EndTime != nil:
		delta := moved.Sub(*task.EndTime)
		end := moved
		task.EndTime = &end
		if task.StartTime != nil {
			start := task.StartTime.Add(delta)
			task.StartTime = &start
		}
	case task.StartTime != nil:
		start := moved
		task.StartTime = &start
	default:
		deadline := moved
		task.Deadline = &deadline
	}

	return task, true
}

// rebaseDate keeps t's local time-of-day and takes target's local date.
func rebaseDate(t, target time.Time) time.Time {
	lt := t.Local()
	ld := target.Local()
	return time.Date(ld.Year(), ld.Month(), ld.Day(),
		lt.Hour(), lt.Minute(), lt.Second(), lt.Nanosecond(), time.Local)
}

// DurationMinutes derives a task's scheduled length from its interval.
// Zero when either endpoint is missing; any minimum visual floor is a
// presentation concern, not a data one.
func DurationMinutes(task domain.Task) int {
	if task.StartTime == nil || task.EndTime == nil {
		return 0
	}
	return int(task.EndTime.Sub(*task.StartTime) / time.Minute)
}

// Days returns n consecutive days starting at start (local midnight).
func Days(start time.Time, n int) []time.Time {
	start = startOfDay(start)
	days := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}

// MonthDays returns every day of the month containing t.
func MonthDays(t time.Time) []time.Time {
	lt := t.Local()
	first := time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, time.Local)
	return Days(first, first.AddDate(0, 1, -1).Day())
}

func startOfDay(t time.Time) time.Time {
	lt := t.Local()
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.Local)
}
