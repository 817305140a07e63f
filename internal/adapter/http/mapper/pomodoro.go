package mapper

import (
	"time"

	"focusquest/internal/adapter/http/dto"
	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
)

func ToPomodoroSessionItem(session domain.PomodoroSession) dto.PomodoroSessionItem {
	return dto.PomodoroSessionItem{
		ID:              session.ID,
		UserID:          session.UserID,
		StartTime:       session.StartTime.Format(time.RFC3339),
		EndTime:         session.EndTime.Format(time.RFC3339),
		DurationMinutes: session.DurationMinutes,
		CreatedAt:       session.CreatedAt.Format(time.RFC3339),
	}
}

func ToPomodoroStatsResponse(report ports.PomodoroReport) dto.PomodoroStatsResponse {
	return dto.PomodoroStatsResponse{
		AllTime: toPomodoroStatsItem(report.AllTime),
		Weekly:  toPomodoroStatsItem(report.Weekly),
		Monthly: toPomodoroStatsItem(report.Monthly),
	}
}

func toPomodoroStatsItem(stats domain.PomodoroStats) dto.PomodoroStatsItem {
	return dto.PomodoroStatsItem{
		TotalSessions: stats.TotalSessions,
		TotalMinutes:  stats.TotalMinutes,
	}
}
