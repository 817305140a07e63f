package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
)

type memPomodoroRepo struct {
	sessions []domain.PomodoroSession
}

var _ ports.PomodoroRepository = (*memPomodoroRepo)(nil)

func (m *memPomodoroRepo) Insert(ctx context.Context, session domain.PomodoroSession) (domain.PomodoroSession, error) {
	m.sessions = append(m.sessions, session)
	return session, nil
}

func (m *memPomodoroRepo) ListByUser(ctx context.Context, userID string) ([]domain.PomodoroSession, error) {
	var out []domain.PomodoroSession
	for _, s := range m.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestLogSession_DerivesDuration(t *testing.T) {
	repo := &memPomodoroRepo{}
	svc := NewPomodoroService(repo)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	logged, err := svc.LogSession(context.Background(), domain.PomodoroSession{
		UserID:    "u1",
		StartTime: start,
		EndTime:   start.Add(25 * time.Minute),
	})
	require.NoError(t, err)
	require.NotEmpty(t, logged.ID)
	require.Equal(t, 25, logged.DurationMinutes)
	require.False(t, logged.CreatedAt.IsZero())
}

func TestStats_Windows(t *testing.T) {
	repo := &memPomodoroRepo{}
	svc := NewPomodoroService(repo)

	logAt := func(created time.Time, minutes int) {
		repo.sessions = append(repo.sessions, domain.PomodoroSession{
			UserID:          "u1",
			DurationMinutes: minutes,
			CreatedAt:       created,
		})
	}

	weekStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local) // a Monday
	logAt(weekStart.Add(10*time.Hour), 25)                     // in week, in month
	logAt(weekStart.AddDate(0, 0, 6).Add(time.Hour), 50)       // in week, in month
	logAt(weekStart.AddDate(0, 0, 9), 25)                      // out of week, in month
	logAt(weekStart.AddDate(0, -2, 0), 25)                     // out of both

	monthStart := weekStart
	report, err := svc.Stats(context.Background(), "u1", &weekStart, &monthStart)
	require.NoError(t, err)

	require.Equal(t, 4, report.AllTime.TotalSessions)
	require.Equal(t, 125, report.AllTime.TotalMinutes)
	require.Equal(t, 2, report.Weekly.TotalSessions)
	require.Equal(t, 75, report.Weekly.TotalMinutes)
	require.Equal(t, 3, report.Monthly.TotalSessions)
	require.Equal(t, 100, report.Monthly.TotalMinutes)
}

func TestStats_NoWindowsRequested(t *testing.T) {
	svc := NewPomodoroService(&memPomodoroRepo{})

	report, err := svc.Stats(context.Background(), "u1", nil, nil)
	require.NoError(t, err)
	require.Zero(t, report.AllTime.TotalSessions)
	require.Zero(t, report.Weekly.TotalSessions)
	require.Zero(t, report.Monthly.TotalSessions)
}
