package events

import "time"

var colors = map[string]bool{
	"blue": true, "green": true, "purple": true, "orange": true,
	"red": true, "pink": true, "indigo": true, "teal": true,
}

const (
	ReminderEmail = "email"
	ReminderPush  = "push"
	ReminderBoth  = "both"
)

// Reminder is notification metadata attached to an event. The dispatch job
// that consumes it lives outside this service; we only store it.
type Reminder struct {
	Type       string `json:"type"`
	TimeBefore int    `json:"timeBefore"` // minutes before the event
	Sent       bool   `json:"sent"`
}

type Event struct {
	ID          string     `json:"id"`
	UserID      string     `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	AllDay      bool       `json:"allDay"`
	Color       string     `json:"color"`
	Reminders   []Reminder `json:"reminders"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func ValidColor(c string) bool { return colors[c] }

func ValidReminderType(t string) bool {
	return t == ReminderEmail || t == ReminderPush || t == ReminderBoth
}
