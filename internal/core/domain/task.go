package domain

import "time"

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

type Category string

const (
	CategoryStudy    Category = "study"
	CategoryChores   Category = "chores"
	CategorySelfCare Category = "self-care"
	CategoryWork     Category = "work"
	CategoryOther    Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryStudy, CategoryChores, CategorySelfCare, CategoryWork, CategoryOther:
		return true
	}
	return false
}

// Urgencies and Categories list the enum values in display order; stat
// breakdowns emit a count for every value, including zeros.
var (
	Urgencies  = []Urgency{UrgencyHigh, UrgencyMedium, UrgencyLow}
	Categories = []Category{CategoryStudy, CategoryWork, CategoryChores, CategorySelfCare, CategoryOther}
)

// Task is the central entity. Deadline is the legacy single-point due
// time; StartTime/EndTime are the newer scheduled-interval model. Both
// coexist in stored data and views differ in which one they read, so
// neither may be dropped or silently unified.
type Task struct {
	ID               string
	UserID           string
	Title            string
	Description      *string
	Urgency          Urgency
	Category         Category
	Deadline         *time.Time
	StartTime        *time.Time
	EndTime          *time.Time
	Completed        bool
	EstimatedMinutes *int
	Notes            *string
	Hero             *string
	Avatar           *string
	Obstacles        []string
	WinCondition     *string
	Reward           *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type CreateTaskInput struct {
	Title            string
	Description      *string
	Urgency          Urgency
	Category         Category
	Deadline         *time.Time
	StartTime        *time.Time
	EndTime          *time.Time
	EstimatedMinutes *int
	Notes            *string
	Hero             *string
	Avatar           *string
	Obstacles        []string
	WinCondition     *string
	Reward           *string
}

type UpdateTaskInput struct {
	Title            *string
	Description      *string
	DescriptionSet   bool
	Urgency          *Urgency
	Category         *Category
	Deadline         *time.Time
	DeadlineSet      bool
	StartTime        *time.Time
	StartTimeSet     bool
	EndTime          *time.Time
	EndTimeSet       bool
	Completed        *bool
	EstimatedMinutes *int
	Notes            *string
	NotesSet         bool
}

// Identity is the storage-selecting principal: an authenticated user
// id, or guest when the id is empty. Guest tasks live only in the
// local store and never sync to the server.
type Identity struct {
	UserID string
}

func Guest() Identity             { return Identity{} }
func User(userID string) Identity { return Identity{UserID: userID} }
func (i Identity) IsGuest() bool  { return i.UserID == "" }
