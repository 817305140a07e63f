package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"focusquest/internal/app/cache"
	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
	"focusquest/internal/core/schedule"
)

// TaskService validates and stamps task mutations, then routes them
// through the identity's cache so every consumer observes the change.
type TaskService struct {
	caches *cache.Registry
	now    func() time.Time
	newID  func() string
}

var _ ports.TaskService = (*TaskService)(nil)

func NewTaskService(caches *cache.Registry) *TaskService {
	return &TaskService{
		caches: caches,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// ListTasks returns the identity's tasks sorted by deadline ascending,
// dateless tasks last.
func (s *TaskService) ListTasks(ctx context.Context, identity domain.Identity) ([]domain.Task, error) {
	c := s.caches.For(identity)
	if err := c.Refresh(ctx, false); err != nil {
		// A stale snapshot beats a blocked caller; surface the error
		// only when there is nothing to show.
		tasks, snapErr := c.Snapshot(ctx)
		if len(tasks) == 0 {
			return nil, snapErr
		}
		sortByDeadline(tasks)
		return tasks, nil
	}

	tasks, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	sortByDeadline(tasks)
	return tasks, nil
}

func (s *TaskService) CreateTask(ctx context.Context, identity domain.Identity, in domain.CreateTaskInput) (domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Task{}, domain.ErrTitleRequired
	}
	if !in.Urgency.Valid() {
		return domain.Task{}, domain.ErrInvalidUrgency
	}
	if !in.Category.Valid() {
		return domain.Task{}, domain.ErrInvalidCategory
	}

	now := s.now().UTC()
	task := domain.Task{
		ID:               s.newID(),
		UserID:           identity.UserID,
		Title:            title,
		Description:      in.Description,
		Urgency:          in.Urgency,
		Category:         in.Category,
		Deadline:         normalizeDeadline(in.Deadline),
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		Completed:        false,
		EstimatedMinutes: in.EstimatedMinutes,
		Notes:            in.Notes,
		Hero:             in.Hero,
		Avatar:           in.Avatar,
		Obstacles:        in.Obstacles,
		WinCondition:     in.WinCondition,
		Reward:           in.Reward,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	return s.caches.For(identity).Create(ctx, task)
}

func (s *TaskService) UpdateTask(ctx context.Context, identity domain.Identity, taskID string, in domain.UpdateTaskInput) (domain.Task, error) {
	c := s.caches.For(identity)
	task, err := c.Get(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return domain.Task{}, domain.ErrTitleRequired
		}
		task.Title = title
	}
	if in.Urgency != nil {
		if !in.Urgency.Valid() {
			return domain.Task{}, domain.ErrInvalidUrgency
		}
		task.Urgency = *in.Urgency
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return domain.Task{}, domain.ErrInvalidCategory
		}
		task.Category = *in.Category
	}
	if in.DescriptionSet {
		task.Description = in.Description
	}
	if in.DeadlineSet {
		task.Deadline = normalizeDeadline(in.Deadline)
	}
	if in.StartTimeSet {
		task.StartTime = in.StartTime
	}
	if in.EndTimeSet {
		task.EndTime = in.EndTime
	}
	if in.Completed != nil && *in.Completed {
		// false→true only; the UI never un-completes a task.
		task.Completed = true
	}
	if in.EstimatedMinutes != nil {
		task.EstimatedMinutes = in.EstimatedMinutes
	}
	if in.NotesSet {
		task.Notes = in.Notes
	}

	task.UpdatedAt = s.now().UTC()
	return c.Update(ctx, task)
}

func (s *TaskService) DeleteTask(ctx context.Context, identity domain.Identity, taskID string) error {
	return s.caches.For(identity).Delete(ctx, taskID)
}

func (s *TaskService) CompleteTask(ctx context.Context, identity domain.Identity, taskID string) (domain.Task, error) {
	return s.caches.For(identity).Complete(ctx, taskID)
}

// MoveTask handles the drag-and-drop TaskMoved event: rebase the
// task's date onto target, keep its time-of-day, and skip the write
// entirely when the date did not change.
func (s *TaskService) MoveTask(ctx context.Context, identity domain.Identity, taskID string, target time.Time) (domain.Task, bool, error) {
	c := s.caches.For(identity)
	task, err := c.Get(ctx, taskID)
	if err != nil {
		return domain.Task{}, false, err
	}

	moved, changed := schedule.Reschedule(task, target)
	if !changed {
		return task, false, nil
	}

	moved.UpdatedAt = s.now().UTC()
	updated, err := c.Update(ctx, moved)
	if err != nil {
		return domain.Task{}, false, err
	}
	return updated, true, nil
}

// normalizeDeadline pins a due date to the very end of its local
// calendar day, matching how deadlines are entered.
func normalizeDeadline(deadline *time.Time) *time.Time {
	if deadline == nil {
		return nil
	}
	d := deadline.Local()
	end := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999_000_000, time.Local)
	return &end
}

func sortByDeadline(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		di, dj := tasks[i].Deadline, tasks[j].Deadline
		switch {
		case di == nil && dj == nil:
			return false
		case di == nil:
			return false
		case dj == nil:
			return true
		}
		return di.Before(*dj)
	})
}
