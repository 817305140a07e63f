package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
)

const insertPomodoroQuery = `
INSERT INTO pomodoro_sessions (
  id, user_id, start_time, end_time, duration_minutes, created_at
) VALUES (
  :id, :user_id, :start_time, :end_time, :duration_minutes, :created_at
);
`

const listPomodoroQuery = `
SELECT *
FROM pomodoro_sessions
WHERE user_id = $1
ORDER BY created_at ASC;
`

type PomodoroRepository struct {
	db *sqlx.DB
}

var _ ports.PomodoroRepository = (*PomodoroRepository)(nil)

func NewPomodoroRepository(db *sqlx.DB) *PomodoroRepository {
	return &PomodoroRepository{db: db}
}

type pomodoroRow struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	StartTime       time.Time `db:"start_time"`
	EndTime         time.Time `db:"end_time"`
	DurationMinutes int       `db:"duration_minutes"`
	CreatedAt       time.Time `db:"created_at"`
}

func (r *PomodoroRepository) Insert(ctx context.Context, session domain.PomodoroSession) (domain.PomodoroSession, error) {
	row := pomodoroRow{
		ID:              session.ID,
		UserID:          session.UserID,
		StartTime:       session.StartTime,
		EndTime:         session.EndTime,
		DurationMinutes: session.DurationMinutes,
		CreatedAt:       session.CreatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, insertPomodoroQuery, row); err != nil {
		return domain.PomodoroSession{}, err
	}
	return session, nil
}

func (r *PomodoroRepository) ListByUser(ctx context.Context, userID string) ([]domain.PomodoroSession, error) {
	var rows []pomodoroRow
	if err := r.db.SelectContext(ctx, &rows, listPomodoroQuery, userID); err != nil {
		return nil, err
	}

	sessions := make([]domain.PomodoroSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, domain.PomodoroSession{
			ID:              row.ID,
			UserID:          row.UserID,
			StartTime:       row.StartTime,
			EndTime:         row.EndTime,
			DurationMinutes: row.DurationMinutes,
			CreatedAt:       row.CreatedAt,
		})
	}
	return sessions, nil
}
