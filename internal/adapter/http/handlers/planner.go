package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"focusquest/internal/adapter/http/dto"
	"focusquest/internal/adapter/http/mapper"
	"focusquest/internal/adapter/http/middleware"
	"focusquest/internal/core/ports"
	"focusquest/internal/core/schedule"
	"focusquest/pkg/apierrors"
)

const (
	ViewDay   = "day"
	ViewWeek  = "week"
	ViewMonth = "month"
)

type PlannerHandler struct {
	taskService ports.TaskService
}

func NewPlannerHandler(taskService ports.TaskService) *PlannerHandler {
	return &PlannerHandler{taskService: taskService}
}

// GetPlanner renders the calendar view: one bucket of tasks plus
// per-day stats for every visible day, and the dateless remainder.
// The weekly and daily planners read the schedule fields; the monthly
// overview still groups on the legacy deadline field.
func (h *PlannerHandler) GetPlanner(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity := middleware.GetIdentity(c)

	view := c.DefaultQuery("view", ViewDay)
	if view != ViewDay && view != ViewWeek && view != ViewMonth {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPlannerView, lang),
		)
		return
	}

	start := time.Now()
	if value := c.Query("start"); value != "" {
		parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
		if err != nil {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPlannerView, lang),
			)
			return
		}
		start = parsed
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), identity)
	if err != nil {
		zap.L().Error("failed to build planner view", zap.String("view", view), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailPlannerView, lang),
		)
		return
	}

	var days []time.Time
	source := schedule.SourceSchedule
	switch view {
	case ViewDay:
		days = schedule.Days(start, 1)
	case ViewWeek:
		days = schedule.Days(start, 7)
	case ViewMonth:
		days = schedule.MonthDays(start)
		source = schedule.SourceDeadline
	}

	buckets := schedule.GroupByDate(tasks, days, source)

	response := dto.PlannerResponse{
		View:        view,
		Start:       string(schedule.KeyFor(start)),
		Days:        make([]dto.PlannerDay, 0, len(days)),
		Unscheduled: mapper.ToTaskItems(schedule.Unscheduled(tasks)),
	}

	for _, day := range days {
		bucket := buckets[schedule.KeyFor(day)]
		schedule.SortBucket(bucket)
		response.Days = append(response.Days, dto.PlannerDay{
			Date:  string(schedule.KeyFor(day)),
			Tasks: mapper.ToTaskItems(bucket),
			Stats: toDayStats(schedule.ComputeDayStats(bucket)),
		})
	}

	c.JSON(http.StatusOK, response)
}

func toDayStats(stats schedule.DayStats) dto.DayStats {
	byUrgency := make(map[string]int, len(stats.Urgency))
	for urgency, count := range stats.Urgency {
		byUrgency[string(urgency)] = count
	}
	byCategory := make(map[string]int, len(stats.Category))
	for category, count := range stats.Category {
		byCategory[string(category)] = count
	}

	return dto.DayStats{
		Total:          stats.Total,
		Completed:      stats.Completed,
		CompletionRate: stats.CompletionRate,
		ByUrgency:      byUrgency,
		ByCategory:     byCategory,
	}
}
