package briefing

import "time"

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// ComputeStats derives the aggregate counts for one task list. The due-date
// buckets overlap (a task due today is also due this week), so they do not sum
// to the total.
func ComputeStats(tasks []Task, now time.Time) Stats {
	tomorrow := now.AddDate(0, 0, 1)
	nextWeek := now.AddDate(0, 0, 7)

	var s Stats
	s.Total = len(tasks)

	for _, t := range tasks {
		switch t.Status {
		case StatusCompleted:
			s.Completed++
		case StatusInProgress:
			s.InProgress++
		case StatusToDo:
			s.ToDo++
		}

		if t.Priority == PriorityHigh && t.Status != StatusCompleted {
			s.HighPriority++
		}

		if t.DueDate == nil || t.Status == StatusCompleted {
			continue
		}
		due := *t.DueDate

		if due.Before(now) {
			s.Overdue++
		}
		if sameDay(due, now) {
			s.DueToday++
		}
		if sameDay(due, tomorrow) {
			s.DueTomorrow++
		}
		if !due.Before(now) && !due.After(nextWeek) {
			s.DueThisWeek++
		}
	}
	return s
}
