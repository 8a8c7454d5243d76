package briefing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"flowspace-backend/internal/ai"
)

// Generator is the slice of the failover orchestrator the assembler needs.
type Generator interface {
	Generate(ctx context.Context, req ai.GenerationRequest) (string, error)
}

// Assembler builds the daily briefing. It prefers a generated summary but is
// defined never to fail: every internal error degrades to the rule-based path.
type Assembler struct {
	gen Generator
	now func() time.Time
}

func NewAssembler(gen Generator) *Assembler {
	return &Assembler{gen: gen, now: time.Now}
}

type generated struct {
	Summary     string `json:"summary"`
	FocusTaskID string `json:"focusTaskId"`
	Insight     string `json:"insight"`
	Emoji       string `json:"emoji"`
}

// Assemble produces a briefing for the supplied task list. An empty list
// short-circuits to a canned response without touching any provider.
func (a *Assembler) Assemble(ctx context.Context, tasks []Task) Briefing {
	now := a.now()
	greeting, timeContext := timeOfDay(now)

	if len(tasks) == 0 {
		return Briefing{
			Greeting:     greeting + "! ☀️",
			Summary:      "Your task list is empty. Add your first task to get started with personalized productivity insights!",
			Stats:        Stats{},
			Productivity: Productivity{Score: 0, Trend: TrendNeutral},
		}
	}

	stats := ComputeStats(tasks, now)
	productivity := AssessProductivity(stats)
	ranked := RankByUrgency(tasks, now)

	topTasks := ranked
	if len(topTasks) > 8 {
		topTasks = topTasks[:8]
	}

	out, err := a.generate(ctx, now, greeting, timeContext, stats, productivity, topTasks)
	if err != nil {
		log.Printf("[briefing] generation failed, using rule-based summary: %v", err)
		return a.fallback(greeting, timeContext, stats, productivity, ranked)
	}

	// The model picks the focus task by id; only an id that matches nothing
	// real gets overridden by the urgency ranking. A valid-but-different pick
	// is honored.
	focus := findTask(tasks, out.FocusTaskID)
	if focus == nil && len(ranked) > 0 {
		focus = &ranked[0].Task
	}

	emoji := out.Emoji
	if emoji == "" {
		emoji = "✨"
	}

	var insight *string
	if out.Insight != "" {
		insight = &out.Insight
	}

	return Briefing{
		Greeting:     greeting + "! " + emoji,
		Summary:      out.Summary,
		FocusTask:    focus,
		Insight:      insight,
		Stats:        stats,
		Productivity: productivity,
	}
}

func (a *Assembler) generate(
	ctx context.Context,
	now time.Time,
	greeting, timeContext string,
	stats Stats,
	productivity Productivity,
	topTasks []ScoredTask,
) (*generated, error) {
	prompt := buildPrompt(now, greeting, timeContext, stats, productivity, topTasks)

	text, err := a.gen.Generate(ctx, ai.GenerationRequest{Prompt: prompt, Format: ai.FormatJSON})
	if err != nil {
		return nil, err
	}

	var out generated
	if err := json.Unmarshal([]byte(ai.ExtractJSON(text)), &out); err != nil {
		return nil, &ai.MalformedOutputError{Raw: text, Err: err}
	}
	return &out, nil
}

func (a *Assembler) fallback(
	greeting, timeContext string,
	stats Stats,
	productivity Productivity,
	ranked []ScoredTask,
) Briefing {
	var summary string
	switch {
	case stats.Overdue > 0:
		summary = fmt.Sprintf("You have %d overdue task%s that need immediate attention. Let's tackle them one at a time.",
			stats.Overdue, plural(stats.Overdue))
	case stats.DueToday > 0:
		verb := " is"
		target := "it"
		if stats.DueToday > 1 {
			verb = "s are"
			target = "the most important one"
		}
		summary = fmt.Sprintf("%d task%s due today. Focus on completing %s first.", stats.DueToday, verb, target)
	case stats.HighPriority > 0:
		summary = fmt.Sprintf("You have %d high priority task%s to work on. %s!",
			stats.HighPriority, plural(stats.HighPriority), timeContext)
	case stats.InProgress > 0:
		summary = fmt.Sprintf("You have %d task%s in progress. Great momentum—keep going!",
			stats.InProgress, plural(stats.InProgress))
	default:
		summary = fmt.Sprintf("You have %d tasks ahead. Pick one and make progress!", stats.Total-stats.Completed)
	}

	insight := "Small wins build momentum"
	if stats.Overdue > 0 {
		insight = "Start with overdue tasks to reduce stress"
	}

	var focus *Task
	if len(ranked) > 0 {
		focus = &ranked[0].Task
	}

	return Briefing{
		Greeting:     greeting + "! ☀️",
		Summary:      summary,
		FocusTask:    focus,
		Insight:      &insight,
		Stats:        stats,
		Productivity: productivity,
		Degraded:     true,
	}
}

func buildPrompt(
	now time.Time,
	greeting, timeContext string,
	stats Stats,
	productivity Productivity,
	topTasks []ScoredTask,
) string {
	taskJSON, _ := json.MarshalIndent(topTasks, "", "  ")

	urgent := ""
	if stats.Overdue > 0 {
		urgent = " ⚠️ URGENT"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a world-class productivity coach. Analyze the user's tasks and provide a personalized, actionable daily briefing.

CONTEXT:
- Day: %s
- Time: %s (%s)
- Date: %s

TASK STATISTICS:
- Open tasks: %d
- Overdue: %d%s
- Due today: %d
- Due tomorrow: %d
- Due this week: %d
- High priority: %d
- In progress: %d
- Completed: %d
- Productivity score: %d/100

TASKS (sorted by urgency):
%s

PROVIDE:
1. A personalized 2-sentence briefing that:
   - Acknowledges their current situation (overdue items, workload, progress)
   - Gives a specific, actionable recommendation
   - Feels warm and motivating, not robotic

2. Select the SINGLE most important task to focus on (by id) based on:
   - Overdue items take highest priority
   - Then high priority items due soon
   - Then items already in progress

3. One brief productivity insight or tip relevant to their situation (max 15 words)

RESPONSE FORMAT (JSON only):
{
  "summary": "Your personalized 2-sentence briefing here",
  "focusTaskId": "the_task_id_to_focus_on",
  "insight": "Brief productivity tip or insight",
  "emoji": "single relevant emoji for greeting"
}`,
		now.Weekday(), greeting, timeContext, now.Format("2006-01-02"),
		stats.Total-stats.Completed, stats.Overdue, urgent,
		stats.DueToday, stats.DueTomorrow, stats.DueThisWeek,
		stats.HighPriority, stats.InProgress, stats.Completed,
		productivity.Score, taskJSON,
	)
	return b.String()
}

func timeOfDay(now time.Time) (greeting, context string) {
	hour := now.Hour()
	switch {
	case hour >= 12 && hour < 17:
		return "Good afternoon", "Keep the momentum going"
	case hour >= 17 && hour < 21:
		return "Good evening", "Wrap up your day well"
	case hour >= 21 || hour < 5:
		return "Working late", "Don't forget to rest"
	default:
		return "Good morning", "Start your day strong"
	}
}

func findTask(tasks []Task, id string) *Task {
	if id == "" {
		return nil
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
