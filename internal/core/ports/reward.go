package ports

import (
	"context"

	"focusquest/internal/core/domain"
)

// RewardGranter is the completion side effect: XP proportional to
// urgency, level recompute, streak update. Guest identities have no
// reward state and never reach it.
type RewardGranter interface {
	GrantCompletion(ctx context.Context, userID string, urgency domain.Urgency) (domain.Reward, error)
}

type RewardService interface {
	RewardGranter
	GetReward(ctx context.Context, userID string) (domain.Reward, error)
}

type RewardRepository interface {
	GetByUser(ctx context.Context, userID string) (domain.Reward, error)
	Insert(ctx context.Context, reward domain.Reward) (domain.Reward, error)
	Update(ctx context.Context, reward domain.Reward) (domain.Reward, error)
}
