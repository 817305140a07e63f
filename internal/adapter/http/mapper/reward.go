package mapper

import (
	"time"

	"focusquest/internal/adapter/http/dto"
	"focusquest/internal/core/domain"
)

func ToRewardItem(reward domain.Reward) dto.RewardItem {
	return dto.RewardItem{
		Level:         reward.Level,
		XPPoints:      reward.XPPoints,
		Streak:        reward.Streak,
		LastCompleted: reward.LastCompleted.Format(time.RFC3339),
		LastClaimed:   reward.LastClaimed,
	}
}
