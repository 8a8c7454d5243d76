package briefing

import (
	"math"
	"sort"
	"time"
)

// UrgencyScore ranks a task against the current moment. Components are
// additive and independent: priority base, due-date pressure, momentum bonus.
// The day difference rounds up, so a task due in 30 hours counts as two days
// out, not one. Overdue tasks start at +50, above the +40 ceiling for anything
// not yet due, so an overdue task always outranks a non-overdue one of equal
// priority and status. Staleness adds +5 per overdue day, capped at +30.
func UrgencyScore(t Task, now time.Time) int {
	score := 0

	switch t.Priority {
	case PriorityHigh:
		score += 30
	case PriorityMedium:
		score += 15
	default:
		score += 5
	}

	if t.DueDate != nil {
		daysUntilDue := int(math.Ceil(t.DueDate.Sub(now).Hours() / 24))

		switch {
		case daysUntilDue < 0:
			score += 50 + min(-daysUntilDue*5, 30)
		case daysUntilDue == 0:
			score += 40
		case daysUntilDue == 1:
			score += 25
		case daysUntilDue <= 3:
			score += 15
		case daysUntilDue <= 7:
			score += 5
		}
	}

	if t.Status == StatusInProgress {
		score += 10
	}

	return score
}

// ScoredTask pairs a snapshot with its urgency score for one ranking pass.
// Scores are never cached across requests: "now" moves, so they go stale.
type ScoredTask struct {
	Task
	UrgencyScore int `json:"urgencyScore"`
}

// RankByUrgency scores every incomplete task and sorts descending. Ties keep
// their original order (stable sort).
func RankByUrgency(tasks []Task, now time.Time) []ScoredTask {
	ranked := make([]ScoredTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == StatusCompleted {
			continue
		}
		ranked = append(ranked, ScoredTask{Task: t, UrgencyScore: UrgencyScore(t, now)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].UrgencyScore > ranked[j].UrgencyScore
	})
	return ranked
}
