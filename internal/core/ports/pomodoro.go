package ports

import (
	"context"
	"time"

	"focusquest/internal/core/domain"
)

// PomodoroReport mirrors the analytics panels: all-time totals plus
// optional week and month windows.
type PomodoroReport struct {
	AllTime domain.PomodoroStats
	Weekly  domain.PomodoroStats
	Monthly domain.PomodoroStats
}

type PomodoroService interface {
	LogSession(ctx context.Context, session domain.PomodoroSession) (domain.PomodoroSession, error)
	Stats(ctx context.Context, userID string, weekStart, monthStart *time.Time) (PomodoroReport, error)
}

type PomodoroRepository interface {
	Insert(ctx context.Context, session domain.PomodoroSession) (domain.PomodoroSession, error)
	ListByUser(ctx context.Context, userID string) ([]domain.PomodoroSession, error)
}
