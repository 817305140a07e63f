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

type RewardHandler struct {
	rewardService ports.RewardService
	taskService   ports.TaskService
}

func NewRewardHandler(rewardService ports.RewardService, taskService ports.TaskService) *RewardHandler {
	return &RewardHandler{rewardService: rewardService, taskService: taskService}
}

// GetReward returns the stored reward state together with the streak
// recomputed from recent task history. Reward state only exists for
// authenticated users.
func (h *RewardHandler) GetReward(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity := middleware.GetIdentity(c)

	if identity.IsGuest() {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
		)
		return
	}

	reward, err := h.rewardService.GetReward(c.Request.Context(), identity.UserID)
	if err != nil {
		zap.L().Error("failed to get reward", zap.String("user_id", identity.UserID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailGetReward, lang),
		)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), identity)
	if err != nil {
		zap.L().Error("failed to list tasks for streak", zap.String("user_id", identity.UserID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailGetReward, lang),
		)
		return
	}

	c.JSON(http.StatusOK, dto.RewardResponse{
		Reward: mapper.ToRewardItem(reward),
		// The home-screen streak is a legacy reader: it scans by
		// deadline, not by the scheduled interval.
		CurrentStreak: schedule.ComputeStreak(tasks, time.Now(), schedule.SourceDeadline),
	})
}
