package dto

type RewardItem struct {
	Level         int    `json:"level"`
	XPPoints      int    `json:"xp_points"`
	Streak        int    `json:"streak"`
	LastCompleted string `json:"last_completed"`
	LastClaimed   string `json:"last_claimed"`
}

type RewardResponse struct {
	Reward RewardItem `json:"reward"`
	// CurrentStreak is recomputed from the task history on every read;
	// the stored streak counter can lag behind it.
	CurrentStreak int `json:"current_streak"`
}
