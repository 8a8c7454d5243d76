package briefing

import "math"

const (
	TrendExcellent      = "excellent"
	TrendGood           = "good"
	TrendNeutral        = "neutral"
	TrendNeedsAttention = "needs_attention"
)

// Productivity is a 0-100 score plus a categorical trend label.
type Productivity struct {
	Score int    `json:"score"`
	Trend string `json:"trend"`
}

// AssessProductivity is a pure function of the stats: completion rate minus an
// overdue penalty (capped at 30) plus a flat +10 for having anything in
// progress, clamped to [0, 100].
func AssessProductivity(s Stats) Productivity {
	completionRate := 0
	if s.Total > 0 {
		completionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}

	overdueImpact := min(s.Overdue*10, 30)

	score := completionRate - overdueImpact
	if s.InProgress > 0 {
		score += 10
	}
	score = max(0, min(100, score))

	trend := TrendNeutral
	switch {
	case score >= 70:
		trend = TrendExcellent
	case score >= 50:
		trend = TrendGood
	case score < 30:
		trend = TrendNeedsAttention
	}

	return Productivity{Score: score, Trend: trend}
}
