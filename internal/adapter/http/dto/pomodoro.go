package dto

type LogPomodoroRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type PomodoroSessionItem struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	CreatedAt       string `json:"created_at"`
}

type PomodoroStatsItem struct {
	TotalSessions int `json:"total_sessions"`
	TotalMinutes  int `json:"total_minutes"`
}

type PomodoroStatsResponse struct {
	AllTime PomodoroStatsItem `json:"all_time"`
	Weekly  PomodoroStatsItem `json:"weekly"`
	Monthly PomodoroStatsItem `json:"monthly"`
}
