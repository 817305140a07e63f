package domain

import "time"

// PomodoroSession is one logged focus interval.
type PomodoroSession struct {
	ID              string
	UserID          string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	CreatedAt       time.Time
}

// PomodoroStats is an aggregate over a set of sessions.
type PomodoroStats struct {
	TotalSessions int
	TotalMinutes  int
}
