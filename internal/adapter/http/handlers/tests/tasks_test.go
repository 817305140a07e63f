package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"focusquest/internal/adapter/http/dto"
	"focusquest/internal/adapter/http/handlers"
	"focusquest/internal/adapter/http/middleware"
	"focusquest/internal/core/domain"
	"focusquest/pkg/apierrors"
	"focusquest/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "handler-test-secret"

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) ListTasks(ctx context.Context, identity domain.Identity) ([]domain.Task, error) {
	args := m.Called(ctx, identity)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) CreateTask(ctx context.Context, identity domain.Identity, in domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, identity, in)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, identity domain.Identity, taskID string, in domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, identity, taskID, in)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, identity domain.Identity, taskID string) error {
	args := m.Called(ctx, identity, taskID)
	return args.Error(0)
}

func (m *taskServiceMock) CompleteTask(ctx context.Context, identity domain.Identity, taskID string) (domain.Task, error) {
	args := m.Called(ctx, identity, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) MoveTask(ctx context.Context, identity domain.Identity, taskID string, target time.Time) (domain.Task, bool, error) {
	args := m.Called(ctx, identity, taskID, target)
	return args.Get(0).(domain.Task), args.Bool(1), args.Error(2)
}

type rewardServiceMock struct {
	mock.Mock
}

func (m *rewardServiceMock) GrantCompletion(ctx context.Context, userID string, urgency domain.Urgency) (domain.Reward, error) {
	args := m.Called(ctx, userID, urgency)
	return args.Get(0).(domain.Reward), args.Error(1)
}

func (m *rewardServiceMock) GetReward(ctx context.Context, userID string) (domain.Reward, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Reward), args.Error(1)
}

func newTaskRouter(handler *handlers.TaskHandler) *gin.Engine {
	router := gin.New()
	api := router.Group("/api", middleware.LanguageMiddleware(), middleware.AuthMiddleware(testJWTSecret))
	api.GET("/tasks", handler.ListTasks)
	api.POST("/tasks", handler.CreateTask)
	api.PUT("/tasks", handler.UpdateTask)
	api.DELETE("/tasks/:id", handler.DeleteTask)
	api.POST("/tasks/:id/complete", handler.CompleteTask)
	api.POST("/tasks/:id/move", handler.MoveTask)
	api.GET("/tasks/export", handler.ExportCalendar)
	return router
}

func signedToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID}).
		SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func TestTaskHandler_ListTasks_Success(t *testing.T) {
	description := "chapter 4 exercises"
	deadline := time.Date(2026, 3, 20, 22, 59, 59, 0, time.UTC)
	createdAt := time.Date(2026, 3, 13, 10, 20, 30, 0, time.UTC)

	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, domain.User("user-1")).Return(
		[]domain.Task{
			{
				ID:          "t-1",
				UserID:      "user-1",
				Title:       "Revise maths",
				Description: &description,
				Urgency:     domain.UrgencyHigh,
				Category:    domain.CategoryStudy,
				Deadline:    &deadline,
				CreatedAt:   createdAt,
				UpdatedAt:   createdAt,
			},
		},
		nil,
	).Once()
	handler := handlers.NewTaskHandler(serviceMock, new(rewardServiceMock))

	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-1"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)

	require.Equal(t, "t-1", got[0].ID)
	require.Equal(t, "Revise maths", got[0].Title)
	require.Equal(t, "chapter 4 exercises", *got[0].Description)
	require.Equal(t, "high", got[0].Urgency)
	require.Equal(t, "study", got[0].Category)
	require.Equal(t, "2026-03-20T22:59:59Z", *got[0].Deadline)
	require.Equal(t, "2026-03-13T10:20:30Z", got[0].CreatedAt)
	require.False(t, got[0].Completed)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_GuestWithoutToken(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, domain.Guest()).Return([]domain.Task{}, nil).Once()
	handler := handlers.NewTaskHandler(serviceMock, new(rewardServiceMock))

	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_InvalidToken(t *testing.T) {
	serviceMock := new(taskServiceMock)
	handler := handlers.NewTaskHandler(serviceMock, new(rewardServiceMock))

	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Authentication required.", got.ErrDetails.Message)
	serviceMock.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything)
}

func TestTaskHandler_ListTasks_Error(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, domain.Guest()).Return(nil, errors.New("db is down")).Once()
	handler := handlers.NewTaskHandler(serviceMock, new(rewardServiceMock))

	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, http.StatusInternalServerError, got.ErrDetails.Code)
	require.Equal(t, "Could not retrieve tasks.", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, domain.User("user-1"), mock.MatchedBy(func(in domain.CreateTaskInput) bool {
		return in.Title == "Write report" &&
			in.Urgency == domain.UrgencyMedium &&
			in.Category == domain.CategoryWork
	})).Return(
		domain.Task{
			ID:        "t-9",
			UserID:    "user-1",
			Title:     "Write report",
			Urgency:   domain.UrgencyMedium,
			Category:  domain.CategoryWork,
			CreatedAt: time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC),
		},
		nil,
	).Once()
	handler := handlers.NewTaskHandler(serviceMock, new(rewardServiceMock))

	router := newTaskRouter(handler)

	body := `{"title":"Write report","urgency":"medium","category":"work"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-1"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "t-9", got.ID)
	require.Equal(t, "user-1", got.UserID)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_InvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing title", body: `{"urgency":"low","category":"other"}`},
		{name: "blank title", body: `{"title":"   ","urgency":"low","category":"other"}`},
		{name: "bad deadline", body: `{"title":"x","urgency":"low","category":"other","deadline":"tomorrow"}`},
		{name: "not json", body: `title=x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			handler := handlers.NewTaskHandler(serviceMock, new(rewardServiceMock))
			router := newTaskRouter(handler)

			req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Accept-Language", translator.LanguageEn)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var got apierrors.JsonErr
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			require.Equal(t, "The task payload is invalid.", got.ErrDetails.Message)
			serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_CreateTask_InvalidUrgencyFromService(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, domain.Guest(), mock.Anything).
		Return(domain.Task{}, domain.ErrInvalidUrgency).Once()
	handler := handlers.NewTaskHandler(serviceMock, new(rewardServiceMock))

	router := newTaskRouter(handler)

	body := `{"title":"x","urgency":"urgent","category":"work"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, domain.Guest(), "t-1", mock.MatchedBy(func(in domain.UpdateTaskInput) bool {
		return in.Title != nil && *in.Title == "Renamed" && in.DeadlineSet && in.Deadline == nil
	})).Return(
		domain.Task{ID: "t-1", Title: "Renamed", Urgency: domain.UrgencyLow, Category: domain.CategoryOther},
		nil,
	).Once()
	handler := handlers.NewTaskHandler(serviceMock, new(rewardServiceMock))

	router := newTaskRouter(handler)

	body := `{"id":"t-1","title":"Renamed","deadline":null}`
	req := httptest.NewRequest(http.MethodPut, "/api/tasks", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Renamed", got.Title)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, domain.Guest(), "missing", mock.Anything).
		Return(domain.Task{}, domain.ErrTaskNotFound).Once()
	handler := handlers.NewTaskHandler(serviceMock, new(rewardServiceMock))

	router := newTaskRouter(handler)

	body := `{"id":"missing","title":"whatever"}`
	req := httptest.NewRequest(http.MethodPut, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Task not found.", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("DeleteTask", mock.Anything, domain.Guest(), "t-1").Return(nil).Once()
	handler := handlers.NewTaskHandler(serviceMock, new(rewardServiceMock))

	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodDelete, "/api/tasks/t-1", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CompleteTask_ReturnsReward(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CompleteTask", mock.Anything, domain.User("user-1"), "t-1").Return(
		domain.Task{ID: "t-1", UserID: "user-1", Title: "Done deal", Urgency: domain.UrgencyHigh, Category: domain.CategoryWork, Completed: true},
		nil,
	).Once()

	rewardMock := new(rewardServiceMock)
	rewardMock.On("GetReward", mock.Anything, "user-1").Return(
		domain.Reward{UserID: "user-1", Level: 2, XPPoints: 60, Streak: 3, LastCompleted: time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC)},
		nil,
	).Once()
	handler := handlers.NewTaskHandler(serviceMock, rewardMock)

	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks/t-1/complete", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-1"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.CompleteTaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Task.Completed)
	require.NotNil(t, got.Reward)
	require.Equal(t, 2, got.Reward.Level)
	require.Equal(t, 60, got.Reward.XPPoints)
	serviceMock.AssertExpectations(t)
	rewardMock.AssertExpectations(t)
}

func TestTaskHandler_CompleteTask_GuestHasNoReward(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CompleteTask", mock.Anything, domain.Guest(), "t-1").Return(
		domain.Task{ID: "t-1", Title: "Water plants", Urgency: domain.UrgencyLow, Category: domain.CategoryChores, Completed: true},
		nil,
	).Once()

	rewardMock := new(rewardServiceMock)
	handler := handlers.NewTaskHandler(serviceMock, rewardMock)

	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks/t-1/complete", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.CompleteTaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Nil(t, got.Reward)
	rewardMock.AssertNotCalled(t, "GetReward", mock.Anything, mock.Anything)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_MoveTask_Noop(t *testing.T) {
	target := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	serviceMock := new(taskServiceMock)
	serviceMock.On("MoveTask", mock.Anything, domain.Guest(), "t-1", target).Return(
		domain.Task{ID: "t-1", Title: "Stay put", Urgency: domain.UrgencyLow, Category: domain.CategoryOther},
		false,
		nil,
	).Once()
	handler := handlers.NewTaskHandler(serviceMock, new(rewardServiceMock))

	router := newTaskRouter(handler)

	body := `{"target_date":"2026-03-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/t-1/move", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.MoveTaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.False(t, got.Moved)
	require.Equal(t, "t-1", got.Task.ID)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ExportCalendar(t *testing.T) {
	t.Setenv("TZ", "Europe/Paris")

	start := time.Date(2026, 3, 16, 14, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 16, 15, 0, 0, 0, time.UTC)

	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, domain.Guest()).Return(
		[]domain.Task{
			{ID: "t-1", Title: "Scheduled", Urgency: domain.UrgencyHigh, Category: domain.CategoryStudy, StartTime: &start, EndTime: &end},
			{ID: "t-2", Title: "Completed", Urgency: domain.UrgencyLow, Category: domain.CategoryOther, StartTime: &start, EndTime: &end, Completed: true},
			{ID: "t-3", Title: "Dateless", Urgency: domain.UrgencyLow, Category: domain.CategoryOther},
		},
		nil,
	).Once()
	handler := handlers.NewTaskHandler(serviceMock, new(rewardServiceMock))

	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/export", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "focusquest.ics")

	document := rec.Body.String()
	require.Contains(t, document, "PRODID:-//FocusQuest//Task Sync//EN")
	// The calendar names the real IANA zone, never the "Local" alias.
	require.Contains(t, document, "X-WR-TIMEZONE:Europe/Paris")
	require.Contains(t, document, "SUMMARY:Scheduled")
	require.Contains(t, document, "PRIORITY:1")
	require.NotContains(t, document, "SUMMARY:Completed")
	require.NotContains(t, document, "SUMMARY:Dateless")
	serviceMock.AssertExpectations(t)
}
