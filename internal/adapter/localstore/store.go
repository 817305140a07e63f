// Package localstore persists guest tasks in a single JSON file,
// mirroring the browser-local storage used for unauthenticated
// sessions: one serialized array under one well-known key, read and
// rewritten wholesale on every mutation. Guest data never syncs to a
// server.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
)

// FileName is the well-known storage key.
const FileName = "focusquest_guest_tasks.json"

type Store struct {
	mu   sync.Mutex
	path string
}

var _ ports.TaskStore = (*Store)(nil)

// New returns a guest store rooted at dir. The file is created lazily
// on the first write.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

// taskRecord is the on-disk task shape: the same field names the HTTP
// surface uses, so a snapshot of either side is readable as the other.
type taskRecord struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	Urgency          string     `json:"urgency"`
	Category         string     `json:"category"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	StartTime        *time.Time `json:"start_time,omitempty"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	Completed        bool       `json:"completed"`
	EstimatedMinutes *int       `json:"estimated_minutes,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	Hero             *string    `json:"hero,omitempty"`
	Avatar           *string    `json:"avatar,omitempty"`
	Obstacles        []string   `json:"obstacles,omitempty"`
	WinCondition     *string    `json:"win_condition,omitempty"`
	Reward           *string    `json:"reward,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (s *Store) List(ctx context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *Store) Get(ctx context.Context, id string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.readAll()
	if err != nil {
		return domain.Task{}, err
	}
	for _, task := range tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

func (s *Store) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.readAll()
	if err != nil {
		return domain.Task{}, err
	}
	tasks = append(tasks, task)
	if err := s.writeAll(tasks); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *Store) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.readAll()
	if err != nil {
		return domain.Task{}, err
	}
	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = task
			if err := s.writeAll(tasks); err != nil {
				return domain.Task{}, err
			}
			return task, nil
		}
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.readAll()
	if err != nil {
		return err
	}
	kept := tasks[:0]
	found := false
	for _, task := range tasks {
		if task.ID == id {
			found = true
			continue
		}
		kept = append(kept, task)
	}
	if !found {
		return domain.ErrTaskNotFound
	}
	return s.writeAll(kept)
}

func (s *Store) readAll() ([]domain.Task, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, fromRecord(r))
	}
	return tasks, nil
}

func (s *Store) writeAll(tasks []domain.Task) error {
	records := make([]taskRecord, 0, len(tasks))
	for _, task := range tasks {
		records = append(records, toRecord(task))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func toRecord(task domain.Task) taskRecord {
	return taskRecord{
		ID:               task.ID,
		UserID:           task.UserID,
		Title:            task.Title,
		Description:      task.Description,
		Urgency:          string(task.Urgency),
		Category:         string(task.Category),
		Deadline:         task.Deadline,
		StartTime:        task.StartTime,
		EndTime:          task.EndTime,
		Completed:        task.Completed,
		EstimatedMinutes: task.EstimatedMinutes,
		Notes:            task.Notes,
		Hero:             task.Hero,
		Avatar:           task.Avatar,
		Obstacles:        task.Obstacles,
		WinCondition:     task.WinCondition,
		Reward:           task.Reward,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}
}

func fromRecord(r taskRecord) domain.Task {
	return domain.Task{
		ID:               r.ID,
		UserID:           r.UserID,
		Title:            r.Title,
		Description:      r.Description,
		Urgency:          domain.Urgency(r.Urgency),
		Category:         domain.Category(r.Category),
		Deadline:         r.Deadline,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		Completed:        r.Completed,
		EstimatedMinutes: r.EstimatedMinutes,
		Notes:            r.Notes,
		Hero:             r.Hero,
		Avatar:           r.Avatar,
		Obstacles:        r.Obstacles,
		WinCondition:     r.WinCondition,
		Reward:           r.Reward,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
