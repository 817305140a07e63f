package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
)

const listTasksQuery = `
SELECT *
FROM tasks
WHERE user_id = $1
ORDER BY deadline ASC NULLS LAST, created_at ASC;
`

const getTaskQuery = `
SELECT *
FROM tasks
WHERE user_id = $1 AND id = $2;
`

const insertTaskQuery = `
INSERT INTO tasks (
  id, user_id, title, description, urgency, category,
  deadline, start_time, end_time, completed, estimated_minutes,
  notes, hero, avatar, obstacles, win_condition, reward,
  created_at, updated_at
) VALUES (
  :id, :user_id, :title, :description, :urgency, :category,
  :deadline, :start_time, :end_time, :completed, :estimated_minutes,
  :notes, :hero, :avatar, :obstacles, :win_condition, :reward,
  :created_at, :updated_at
);
`

const updateTaskQuery = `
UPDATE tasks SET
  title = :title,
  description = :description,
  urgency = :urgency,
  category = :category,
  deadline = :deadline,
  start_time = :start_time,
  end_time = :end_time,
  completed = :completed,
  estimated_minutes = :estimated_minutes,
  notes = :notes,
  hero = :hero,
  avatar = :avatar,
  obstacles = :obstacles,
  win_condition = :win_condition,
  reward = :reward,
  updated_at = :updated_at
WHERE id = :id AND user_id = :user_id;
`

const deleteTaskQuery = `
DELETE FROM tasks
WHERE user_id = $1 AND id = $2;
`

// TaskRepository is the persistence adapter for one authenticated
// identity; every query is scoped to the bound user id.
type TaskRepository struct {
	db     *sqlx.DB
	userID string
}

var _ ports.TaskStore = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB, userID string) *TaskRepository {
	return &TaskRepository{db: db, userID: userID}
}

type taskRow struct {
	ID               string         `db:"id"`
	UserID           string         `db:"user_id"`
	Title            string         `db:"title"`
	Description      sql.NullString `db:"description"`
	Urgency          string         `db:"urgency"`
	Category         string         `db:"category"`
	Deadline         sql.NullTime   `db:"deadline"`
	StartTime        sql.NullTime   `db:"start_time"`
	EndTime          sql.NullTime   `db:"end_time"`
	Completed        bool           `db:"completed"`
	EstimatedMinutes sql.NullInt64  `db:"estimated_minutes"`
	Notes            sql.NullString `db:"notes"`
	Hero             sql.NullString `db:"hero"`
	Avatar           sql.NullString `db:"avatar"`
	Obstacles        pq.StringArray `db:"obstacles"`
	WinCondition     sql.NullString `db:"win_condition"`
	Reward           sql.NullString `db:"reward"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listTasksQuery, r.userID); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, id string) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, getTaskQuery, r.userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	task.UserID = r.userID
	if _, err := r.db.NamedExecContext(ctx, insertTaskQuery, mapDomainTaskToRow(task)); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	task.UserID = r.userID
	result, err := r.db.NamedExecContext(ctx, updateTaskQuery, mapDomainTaskToRow(task))
	if err != nil {
		return domain.Task{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Task{}, err
	}
	if affected == 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, deleteTaskQuery, r.userID, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Urgency:   domain.Urgency(row.Urgency),
		Category:  domain.Category(row.Category),
		Completed: row.Completed,
		Obstacles: []string(row.Obstacles),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	task.Description = nullStringPtr(row.Description)
	task.Notes = nullStringPtr(row.Notes)
	task.Hero = nullStringPtr(row.Hero)
	task.Avatar = nullStringPtr(row.Avatar)
	task.WinCondition = nullStringPtr(row.WinCondition)
	task.Reward = nullStringPtr(row.Reward)
	task.Deadline = nullTimePtr(row.Deadline)
	task.StartTime = nullTimePtr(row.StartTime)
	task.EndTime = nullTimePtr(row.EndTime)

	if row.EstimatedMinutes.Valid {
		value := int(row.EstimatedMinutes.Int64)
		task.EstimatedMinutes = &value
	}

	return task
}

func mapDomainTaskToRow(task domain.Task) taskRow {
	row := taskRow{
		ID:        task.ID,
		UserID:    task.UserID,
		Title:     task.Title,
		Urgency:   string(task.Urgency),
		Category:  string(task.Category),
		Completed: task.Completed,
		Obstacles: pq.StringArray(task.Obstacles),
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
	if row.Obstacles == nil {
		row.Obstacles = pq.StringArray{}
	}

	row.Description = ptrNullString(task.Description)
	row.Notes = ptrNullString(task.Notes)
	row.Hero = ptrNullString(task.Hero)
	row.Avatar = ptrNullString(task.Avatar)
	row.WinCondition = ptrNullString(task.WinCondition)
	row.Reward = ptrNullString(task.Reward)
	row.Deadline = ptrNullTime(task.Deadline)
	row.StartTime = ptrNullTime(task.StartTime)
	row.EndTime = ptrNullTime(task.EndTime)

	if task.EstimatedMinutes != nil {
		row.EstimatedMinutes = sql.NullInt64{Int64: int64(*task.EstimatedMinutes), Valid: true}
	}

	return row
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	value := v.String
	return &value
}

func ptrNullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	value := v.Time
	return &value
}

func ptrNullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}
