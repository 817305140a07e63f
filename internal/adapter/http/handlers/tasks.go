package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"focusquest/internal/adapter/http/dto"
	"focusquest/internal/adapter/http/mapper"
	"focusquest/internal/adapter/http/middleware"
	"focusquest/internal/adapter/http/validation"
	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
	"focusquest/pkg/apierrors"
	"focusquest/pkg/ical"
)

type TaskHandler struct {
	taskService   ports.TaskService
	rewardService ports.RewardService
}

func NewTaskHandler(taskService ports.TaskService, rewardService ports.RewardService) *TaskHandler {
	return &TaskHandler{taskService: taskService, rewardService: rewardService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity := middleware.GetIdentity(c)

	tasks, err := h.taskService.ListTasks(c.Request.Context(), identity)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTasks, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity := middleware.GetIdentity(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), identity, input)
	if err != nil {
		if isValidationError(err) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
			)
			return
		}

		zap.L().Error("failed to create task", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity := middleware.GetIdentity(c)

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	var req dto.UpdateTaskRequest
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &req); err != nil || req.ID == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}
	delete(raw, "id")

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), identity, req.ID, input)
	if err != nil {
		h.respondTaskError(c, lang, err, apierrors.MsgFailUpdateTask, "failed to update task", req.ID)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity := middleware.GetIdentity(c)

	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), identity, taskID); err != nil {
		h.respondTaskError(c, lang, err, apierrors.MsgFailDeleteTask, "failed to delete task", taskID)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) CompleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity := middleware.GetIdentity(c)

	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	task, err := h.taskService.CompleteTask(c.Request.Context(), identity, taskID)
	if err != nil {
		h.respondTaskError(c, lang, err, apierrors.MsgFailCompleteTask, "failed to complete task", taskID)
		return
	}

	response := dto.CompleteTaskResponse{Task: mapper.ToTaskItem(task)}

	// Guests have no reward state; for users the grant already ran as
	// a completion side effect, so this is a plain read.
	if !identity.IsGuest() {
		reward, err := h.rewardService.GetReward(c.Request.Context(), identity.UserID)
		if err != nil {
			zap.L().Warn("failed to read reward after completion", zap.String("user_id", identity.UserID), zap.Error(err))
		} else {
			item := mapper.ToRewardItem(reward)
			response.Reward = &item
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *TaskHandler) MoveTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity := middleware.GetIdentity(c)

	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	target, err := parseTargetDate(req.TargetDate)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, moved, err := h.taskService.MoveTask(c.Request.Context(), identity, taskID, target)
	if err != nil {
		h.respondTaskError(c, lang, err, apierrors.MsgFailMoveTask, "failed to move task", taskID)
		return
	}

	c.JSON(http.StatusOK, dto.MoveTaskResponse{Task: mapper.ToTaskItem(task), Moved: moved})
}

const calendarFileName = "focusquest.ics"

func (h *TaskHandler) ExportCalendar(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity := middleware.GetIdentity(c)

	tasks, err := h.taskService.ListTasks(c.Request.Context(), identity)
	if err != nil {
		zap.L().Error("failed to export tasks", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailExportTasks, lang),
		)
		return
	}

	document := ical.Build(mapper.ToCalendarEvents(tasks), exportTimezone(), time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+calendarFileName+`"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(document))
}

// exportTimezone names the server's zone for X-WR-TIMEZONE. TZ carries
// the IANA name when set; time.Now().Location() would only say "Local".
func exportTimezone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}
	name, _ := time.Now().Zone()
	return name
}

func (h *TaskHandler) respondTaskError(c *gin.Context, lang string, err error, failKey, logMsg, taskID string) {
	if errors.Is(err, domain.ErrTaskNotFound) {
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
		return
	}
	if isValidationError(err) {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	zap.L().Error(logMsg, zap.String("task_id", taskID), zap.Error(err))
	c.JSON(
		http.StatusInternalServerError,
		apierrors.CreateError(http.StatusInternalServerError, failKey, lang),
	)
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrTitleRequired) ||
		errors.Is(err, domain.ErrInvalidUrgency) ||
		errors.Is(err, domain.ErrInvalidCategory)
}

// parseTargetDate accepts the drop payload either as a bare calendar
// day or as a full timestamp.
func parseTargetDate(value string) (time.Time, error) {
	if target, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return target, nil
	}
	return time.Parse(time.RFC3339, value)
}
