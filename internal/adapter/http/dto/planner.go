package dto

type DayStats struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	CompletionRate float64        `json:"completion_rate"`
	ByUrgency      map[string]int `json:"by_urgency"`
	ByCategory     map[string]int `json:"by_category"`
}

type PlannerDay struct {
	Date  string     `json:"date"`
	Tasks []TaskItem `json:"tasks"`
	Stats DayStats   `json:"stats"`
}

type PlannerResponse struct {
	View        string       `json:"view"`
	Start       string       `json:"start"`
	Days        []PlannerDay `json:"days"`
	Unscheduled []TaskItem   `json:"unscheduled"`
}
