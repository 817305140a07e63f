package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"focusquest/internal/adapter/http/dto"
	"focusquest/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildCreateTaskInput turns a bound create request into a domain
// input. Timestamps are RFC 3339; value checks beyond shape (enum
// membership, title trimming) belong to the service.
func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	deadline, err := parseTimePtr(req.Deadline)
	if err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	startTime, err := parseTimePtr(req.StartTime)
	if err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	endTime, err := parseTimePtr(req.EndTime)
	if err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	return domain.CreateTaskInput{
		Title:            title,
		Description:      req.Description,
		Urgency:          domain.Urgency(req.Urgency),
		Category:         domain.Category(req.Category),
		Deadline:         deadline,
		StartTime:        startTime,
		EndTime:          endTime,
		EstimatedMinutes: req.EstimatedMinutes,
		Notes:            req.Notes,
		Hero:             req.Hero,
		Avatar:           req.Avatar,
		Obstacles:        req.Obstacles,
		WinCondition:     req.WinCondition,
		Reward:           req.Reward,
	}, nil
}

// BuildUpdateTaskInput distinguishes absent fields from explicit
// nulls using the raw message map, so a patch can clear deadline,
// description or notes without touching the rest.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var title *string
	if hasJSONField(raw, "title") && req.Title == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		title = &value
	}

	var urgency *domain.Urgency
	if hasJSONField(raw, "urgency") && req.Urgency == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Urgency != nil {
		value := domain.Urgency(*req.Urgency)
		urgency = &value
	}

	var category *domain.Category
	if hasJSONField(raw, "category") && req.Category == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Category != nil {
		value := domain.Category(*req.Category)
		category = &value
	}

	descriptionSet := hasJSONField(raw, "description")
	if descriptionSet && !isJSONNull(raw["description"]) && req.Description == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	deadline, deadlineSet, err := parseNullableTime(req.Deadline, raw, "deadline")
	if err != nil {
		return domain.UpdateTaskInput{}, err
	}
	startTime, startTimeSet, err := parseNullableTime(req.StartTime, raw, "start_time")
	if err != nil {
		return domain.UpdateTaskInput{}, err
	}
	endTime, endTimeSet, err := parseNullableTime(req.EndTime, raw, "end_time")
	if err != nil {
		return domain.UpdateTaskInput{}, err
	}

	notesSet := hasJSONField(raw, "notes")
	if notesSet && !isJSONNull(raw["notes"]) && req.Notes == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	return domain.UpdateTaskInput{
		Title:            title,
		Description:      req.Description,
		DescriptionSet:   descriptionSet,
		Urgency:          urgency,
		Category:         category,
		Deadline:         deadline,
		DeadlineSet:      deadlineSet,
		StartTime:        startTime,
		StartTimeSet:     startTimeSet,
		EndTime:          endTime,
		EndTimeSet:       endTimeSet,
		Completed:        req.Completed,
		EstimatedMinutes: req.EstimatedMinutes,
		Notes:            req.Notes,
		NotesSet:         notesSet,
	}, nil
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "title") ||
		hasJSONField(raw, "description") ||
		hasJSONField(raw, "urgency") ||
		hasJSONField(raw, "category") ||
		hasJSONField(raw, "deadline") ||
		hasJSONField(raw, "start_time") ||
		hasJSONField(raw, "end_time") ||
		hasJSONField(raw, "completed") ||
		hasJSONField(raw, "estimated_minutes") ||
		hasJSONField(raw, "notes")
}

func parseNullableTime(value *string, raw map[string]json.RawMessage, field string) (*time.Time, bool, error) {
	set := hasJSONField(raw, field)
	if !set || isJSONNull(raw[field]) {
		return nil, set, nil
	}
	if value == nil {
		return nil, false, ErrInvalidTaskPayload
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, false, ErrInvalidTaskPayload
	}
	return &parsed, true, nil
}

func parseTimePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
