package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
)

// PomodoroService logs focus sessions and aggregates them for the
// analytics panels. Window totals are computed over the fetched rows,
// not pushed into the query, so the three panels share one read.
type PomodoroService struct {
	repo  ports.PomodoroRepository
	now   func() time.Time
	newID func() string
}

var _ ports.PomodoroService = (*PomodoroService)(nil)

func NewPomodoroService(repo ports.PomodoroRepository) *PomodoroService {
	return &PomodoroService{repo: repo, now: time.Now, newID: uuid.NewString}
}

func (s *PomodoroService) LogSession(ctx context.Context, session domain.PomodoroSession) (domain.PomodoroSession, error) {
	if session.ID == "" {
		session.ID = s.newID()
	}
	if session.DurationMinutes == 0 && session.EndTime.After(session.StartTime) {
		session.DurationMinutes = int(session.EndTime.Sub(session.StartTime) / time.Minute)
	}
	session.CreatedAt = s.now().UTC()
	return s.repo.Insert(ctx, session)
}

// Stats returns all-time totals plus, when the anchors are given, the
// 7-day week starting at weekStart and the calendar month containing
// monthStart. Sessions are bucketed by their log time.
func (s *PomodoroService) Stats(ctx context.Context, userID string, weekStart, monthStart *time.Time) (ports.PomodoroReport, error) {
	sessions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return ports.PomodoroReport{}, err
	}

	var report ports.PomodoroReport
	report.AllTime = tally(sessions, nil, nil)

	if weekStart != nil {
		start := *weekStart
		end := start.AddDate(0, 0, 7)
		report.Weekly = tally(sessions, &start, &end)
	}
	if monthStart != nil {
		m := monthStart.Local()
		start := time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(0, 1, 0)
		report.Monthly = tally(sessions, &start, &end)
	}

	return report, nil
}

func tally(sessions []domain.PomodoroSession, from, to *time.Time) domain.PomodoroStats {
	var stats domain.PomodoroStats
	for _, session := range sessions {
		at := session.CreatedAt
		if from != nil && at.Before(*from) {
			continue
		}
		if to != nil && !at.Before(*to) {
			continue
		}
		stats.TotalSessions++
		stats.TotalMinutes += session.DurationMinutes
	}
	return stats
}
