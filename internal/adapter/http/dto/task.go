package dto

type TaskItem struct {
	ID               string   `json:"id"`
	UserID           string   `json:"user_id,omitempty"`
	Title            string   `json:"title"`
	Description      *string  `json:"description,omitempty"`
	Urgency          string   `json:"urgency"`
	Category         string   `json:"category"`
	Deadline         *string  `json:"deadline,omitempty"`
	StartTime        *string  `json:"start_time,omitempty"`
	EndTime          *string  `json:"end_time,omitempty"`
	Completed        bool     `json:"completed"`
	EstimatedMinutes *int     `json:"estimated_minutes,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
	Hero             *string  `json:"hero,omitempty"`
	Avatar           *string  `json:"avatar,omitempty"`
	Obstacles        []string `json:"obstacles,omitempty"`
	WinCondition     *string  `json:"win_condition,omitempty"`
	Reward           *string  `json:"reward,omitempty"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title            string   `json:"title" binding:"required,max=255"`
	Description      *string  `json:"description" binding:"omitempty,max=65535"`
	Urgency          string   `json:"urgency" binding:"required"`
	Category         string   `json:"category" binding:"required"`
	Deadline         *string  `json:"deadline" binding:"omitempty"`
	StartTime        *string  `json:"start_time" binding:"omitempty"`
	EndTime          *string  `json:"end_time" binding:"omitempty"`
	EstimatedMinutes *int     `json:"estimated_minutes" binding:"omitempty,gte=0"`
	Notes            *string  `json:"notes" binding:"omitempty,max=65535"`
	Hero             *string  `json:"hero" binding:"omitempty,max=255"`
	Avatar           *string  `json:"avatar" binding:"omitempty,max=255"`
	Obstacles        []string `json:"obstacles" binding:"omitempty"`
	WinCondition     *string  `json:"win_condition" binding:"omitempty,max=65535"`
	Reward           *string  `json:"reward" binding:"omitempty,max=255"`
}

// UpdateTaskRequest patches the task named by its body id. Absent
// fields keep their stored value; explicit nulls clear nullable ones.
type UpdateTaskRequest struct {
	ID               string  `json:"id" binding:"required"`
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	Urgency          *string `json:"urgency"`
	Category         *string `json:"category"`
	Deadline         *string `json:"deadline"`
	StartTime        *string `json:"start_time"`
	EndTime          *string `json:"end_time"`
	Completed        *bool   `json:"completed"`
	EstimatedMinutes *int    `json:"estimated_minutes"`
	Notes            *string `json:"notes"`
}

// MoveTaskRequest carries the drop target of a drag-and-drop
// reschedule. TargetDate is a calendar day, yyyy-mm-dd.
type MoveTaskRequest struct {
	TargetDate string `json:"target_date" binding:"required"`
}

type MoveTaskResponse struct {
	Task  TaskItem `json:"task"`
	Moved bool     `json:"moved"`
}

type CompleteTaskResponse struct {
	Task   TaskItem    `json:"task"`
	Reward *RewardItem `json:"reward,omitempty"`
}
