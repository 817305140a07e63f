package domain

import "time"

const XPPerLevel = 50

// XPForUrgency maps a completed task's urgency to the XP it grants.
var XPForUrgency = map[Urgency]int{
	UrgencyLow:    10,
	UrgencyMedium: 20,
	UrgencyHigh:   30,
}

// Reward is the per-user gamification state, mutated only as a side
// effect of task completion.
type Reward struct {
	ID            string
	UserID        string
	Level         int
	XPPoints      int
	Streak        int
	LastCompleted time.Time
	LastClaimed   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LevelForXP derives the level from total XP.
func LevelForXP(xp int) int {
	return xp/XPPerLevel + 1
}

// NewReward returns the initial reward row for a user.
func NewReward(userID string, now time.Time) Reward {
	return Reward{
		UserID:        userID,
		Level:         1,
		XPPoints:      0,
		Streak:        0,
		LastCompleted: now,
		LastClaimed:   now.Format("2006-01-02"),
	}
}
