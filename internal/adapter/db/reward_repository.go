package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
)

const getRewardQuery = `
SELECT *
FROM rewards
WHERE user_id = $1;
`

const insertRewardQuery = `
INSERT INTO rewards (
  id, user_id, level, xp_points, streak, last_completed, last_claimed,
  created_at, updated_at
) VALUES (
  :id, :user_id, :level, :xp_points, :streak, :last_completed, :last_claimed,
  :created_at, :updated_at
);
`

const updateRewardQuery = `
UPDATE rewards SET
  level = :level,
  xp_points = :xp_points,
  streak = :streak,
  last_completed = :last_completed,
  last_claimed = :last_claimed,
  updated_at = :updated_at
WHERE user_id = :user_id;
`

type RewardRepository struct {
	db *sqlx.DB
}

var _ ports.RewardRepository = (*RewardRepository)(nil)

func NewRewardRepository(db *sqlx.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

type rewardRow struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	Level         int       `db:"level"`
	XPPoints      int       `db:"xp_points"`
	Streak        int       `db:"streak"`
	LastCompleted time.Time `db:"last_completed"`
	LastClaimed   string    `db:"last_claimed"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r *RewardRepository) GetByUser(ctx context.Context, userID string) (domain.Reward, error) {
	var row rewardRow
	if err := r.db.GetContext(ctx, &row, getRewardQuery, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reward{}, domain.ErrRewardNotFound
		}
		return domain.Reward{}, err
	}
	return mapRewardRowToDomain(row), nil
}

func (r *RewardRepository) Insert(ctx context.Context, reward domain.Reward) (domain.Reward, error) {
	if reward.ID == "" {
		reward.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	reward.CreatedAt = now
	reward.UpdatedAt = now

	if _, err := r.db.NamedExecContext(ctx, insertRewardQuery, mapDomainRewardToRow(reward)); err != nil {
		return domain.Reward{}, err
	}
	return reward, nil
}

func (r *RewardRepository) Update(ctx context.Context, reward domain.Reward) (domain.Reward, error) {
	reward.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx, updateRewardQuery, mapDomainRewardToRow(reward))
	if err != nil {
		return domain.Reward{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Reward{}, err
	}
	if affected == 0 {
		return domain.Reward{}, domain.ErrRewardNotFound
	}
	return reward, nil
}

func mapRewardRowToDomain(row rewardRow) domain.Reward {
	return domain.Reward{
		ID:            row.ID,
		UserID:        row.UserID,
		Level:         row.Level,
		XPPoints:      row.XPPoints,
		Streak:        row.Streak,
		LastCompleted: row.LastCompleted,
		LastClaimed:   row.LastClaimed,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func mapDomainRewardToRow(reward domain.Reward) rewardRow {
	return rewardRow{
		ID:            reward.ID,
		UserID:        reward.UserID,
		Level:         reward.Level,
		XPPoints:      reward.XPPoints,
		Streak:        reward.Streak,
		LastCompleted: reward.LastCompleted,
		LastClaimed:   reward.LastClaimed,
		CreatedAt:     reward.CreatedAt,
		UpdatedAt:     reward.UpdatedAt,
	}
}
