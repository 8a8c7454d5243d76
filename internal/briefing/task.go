package briefing

import "time"

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"

	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Task is the read-only snapshot the caller supplies. The briefing layer never
// owns persistence; it ranks and summarizes whatever list it is handed.
type Task struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Priority string     `json:"priority"`
	Status   string     `json:"status"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
}

// Stats are the aggregate counts computed once per briefing request. All
// due-date buckets exclude completed tasks.
type Stats struct {
	Total        int `json:"total"`
	Overdue      int `json:"overdue"`
	DueToday     int `json:"dueToday"`
	DueTomorrow  int `json:"dueTomorrow"`
	DueThisWeek  int `json:"dueThisWeek"`
	HighPriority int `json:"highPriority"`
	Completed    int `json:"completed"`
	InProgress   int `json:"inProgress"`
	ToDo         int `json:"toDo"`
}

// Briefing is the final daily-summary payload, assembled fresh per request.
// Degraded marks a briefing built by the rule-based path after a generation
// failure; it is for callers, not clients.
type Briefing struct {
	Greeting     string       `json:"greeting"`
	Summary      string       `json:"summary"`
	FocusTask    *Task        `json:"focusTask"`
	Insight      *string      `json:"insight"`
	Stats        Stats        `json:"stats"`
	Productivity Productivity `json:"productivity"`
	Degraded     bool         `json:"-"`
}
