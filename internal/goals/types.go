package goals

import "time"

const (
	ScopeMain    = "main"
	ScopeMini    = "mini"
	ScopeMonthly = "monthly"
	ScopeYearly  = "yearly"
)

type Goal struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Scope     string    `json:"scope"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

func ValidScope(s string) bool {
	return s == ScopeMain || s == ScopeMini || s == ScopeMonthly || s == ScopeYearly
}
