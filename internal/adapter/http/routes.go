package http

import (
	"focusquest/internal/adapter/http/handlers"
	"focusquest/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Task     *handlers.TaskHandler
	Planner  *handlers.PlannerHandler
	Reward   *handlers.RewardHandler
	Pomodoro *handlers.PomodoroHandler
}

func RegisterRoutes(r *gin.Engine, jwtSecret string, h Handlers) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware(), middleware.AuthMiddleware(jwtSecret))
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		api.GET("/tasks", h.Task.ListTasks)
		api.POST("/tasks", h.Task.CreateTask)
		api.PUT("/tasks", h.Task.UpdateTask)
		api.DELETE("/tasks/:id", h.Task.DeleteTask)
		api.POST("/tasks/:id/complete", h.Task.CompleteTask)
		api.POST("/tasks/:id/move", h.Task.MoveTask)
		api.GET("/tasks/export", h.Task.ExportCalendar)

		api.GET("/planner", h.Planner.GetPlanner)
		api.GET("/rewards", h.Reward.GetReward)

		api.POST("/pomodoro/sessions", h.Pomodoro.LogSession)
		api.GET("/pomodoro/stats", h.Pomodoro.GetStats)
	}
}
