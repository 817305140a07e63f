package mapper

import (
	"time"

	"focusquest/internal/adapter/http/dto"
	"focusquest/internal/core/domain"
	"focusquest/pkg/ical"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	return dto.TaskItem{
		ID:               task.ID,
		UserID:           task.UserID,
		Title:            task.Title,
		Description:      task.Description,
		Urgency:          string(task.Urgency),
		Category:         string(task.Category),
		Deadline:         formatTimePtr(task.Deadline),
		StartTime:        formatTimePtr(task.StartTime),
		EndTime:          formatTimePtr(task.EndTime),
		Completed:        task.Completed,
		EstimatedMinutes: task.EstimatedMinutes,
		Notes:            task.Notes,
		Hero:             task.Hero,
		Avatar:           task.Avatar,
		Obstacles:        task.Obstacles,
		WinCondition:     task.WinCondition,
		Reward:           task.Reward,
		CreatedAt:        task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        task.UpdatedAt.Format(time.RFC3339),
	}
}

// calendarPriority maps urgency onto the iCalendar 1..9 scale.
var calendarPriority = map[domain.Urgency]int{
	domain.UrgencyHigh:   1,
	domain.UrgencyMedium: 5,
	domain.UrgencyLow:    9,
}

// ToCalendarEvents selects the exportable tasks: incomplete ones with
// both a start and an end.
func ToCalendarEvents(tasks []domain.Task) []ical.Event {
	events := make([]ical.Event, 0, len(tasks))
	for _, task := range tasks {
		if task.Completed || task.StartTime == nil || task.EndTime == nil {
			continue
		}

		description := ""
		if task.Description != nil {
			description = *task.Description
		}

		events = append(events, ical.Event{
			ID:          task.ID,
			Title:       task.Title,
			Description: description,
			Start:       *task.StartTime,
			End:         *task.EndTime,
			Category:    string(task.Category),
			Priority:    calendarPriority[task.Urgency],
		})
	}
	return events
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	value := t.Format(time.RFC3339)
	return &value
}
