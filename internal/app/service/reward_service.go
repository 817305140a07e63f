package service

import (
	"context"
	"errors"
	"time"

	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
)

// RewardService owns the per-user gamification state. It is only ever
// driven by task completion; nothing else mutates a reward row.
type RewardService struct {
	repo ports.RewardRepository
	now  func() time.Time
}

var _ ports.RewardService = (*RewardService)(nil)

func NewRewardService(repo ports.RewardRepository) *RewardService {
	return &RewardService{repo: repo, now: time.Now}
}

// GetReward fetches the user's reward row, creating the initial one on
// first contact.
func (s *RewardService) GetReward(ctx context.Context, userID string) (domain.Reward, error) {
	reward, err := s.repo.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrRewardNotFound) {
		return s.repo.Insert(ctx, domain.NewReward(userID, s.now()))
	}
	return reward, err
}

// GrantCompletion applies the completion side effect: XP proportional
// to urgency, level recomputed from total XP, streak advanced when the
// previous completion was exactly one calendar day back and restarted
// when it was longer ago.
func (s *RewardService) GrantCompletion(ctx context.Context, userID string, urgency domain.Urgency) (domain.Reward, error) {
	reward, err := s.GetReward(ctx, userID)
	if err != nil {
		return domain.Reward{}, err
	}

	now := s.now()
	reward.XPPoints += domain.XPForUrgency[urgency]
	reward.Level = domain.LevelForXP(reward.XPPoints)

	switch days := daysBetween(reward.LastCompleted, now); {
	case days == 1:
		reward.Streak++
	case days > 1:
		reward.Streak = 1
	}
	if reward.Streak == 0 {
		reward.Streak = 1
	}
	reward.LastCompleted = now

	return s.repo.Update(ctx, reward)
}

func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
