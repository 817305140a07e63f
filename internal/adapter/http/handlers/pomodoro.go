package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"focusquest/internal/adapter/http/dto"
	"focusquest/internal/adapter/http/mapper"
	"focusquest/internal/adapter/http/middleware"
	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
	"focusquest/pkg/apierrors"
)

type PomodoroHandler struct {
	pomodoroService ports.PomodoroService
}

func NewPomodoroHandler(pomodoroService ports.PomodoroService) *PomodoroHandler {
	return &PomodoroHandler{pomodoroService: pomodoroService}
}

func (h *PomodoroHandler) LogSession(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity := middleware.GetIdentity(c)

	if identity.IsGuest() {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
		)
		return
	}

	var req dto.LogPomodoroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	startTime, errStart := time.Parse(time.RFC3339, req.StartTime)
	endTime, errEnd := time.Parse(time.RFC3339, req.EndTime)
	if errStart != nil || errEnd != nil || !endTime.After(startTime) {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	session, err := h.pomodoroService.LogSession(c.Request.Context(), domain.PomodoroSession{
		UserID:    identity.UserID,
		StartTime: startTime,
		EndTime:   endTime,
	})
	if err != nil {
		zap.L().Error("failed to log pomodoro session", zap.String("user_id", identity.UserID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailLogPomodoro, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToPomodoroSessionItem(session))
}

func (h *PomodoroHandler) GetStats(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity := middleware.GetIdentity(c)

	if identity.IsGuest() {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
		)
		return
	}

	weekStart, err := parseDateQuery(c.Query("week_start"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}
	monthStart, err := parseDateQuery(c.Query("month_start"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	report, err := h.pomodoroService.Stats(c.Request.Context(), identity.UserID, weekStart, monthStart)
	if err != nil {
		zap.L().Error("failed to compute pomodoro stats", zap.String("user_id", identity.UserID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailPomodoroStats, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToPomodoroStatsResponse(report))
}

func parseDateQuery(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
