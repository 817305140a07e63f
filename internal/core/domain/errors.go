package domain

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrRewardNotFound  = errors.New("reward not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrTitleRequired   = errors.New("task title is required")
	ErrInvalidUrgency  = errors.New("valid urgency level is required")
	ErrInvalidCategory = errors.New("valid category is required")
)
