package briefing

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"flowspace-backend/internal/ai"
)

type fakeGenerator struct {
	calls      int
	lastPrompt string
	text       string
	err        error
}

func (f *fakeGenerator) Generate(_ context.Context, req ai.GenerationRequest) (string, error) {
	f.calls++
	f.lastPrompt = req.Prompt
	return f.text, f.err
}

func newTestAssembler(gen Generator) *Assembler {
	a := NewAssembler(gen)
	a.now = func() time.Time { return testNow } // 09:00, a Tuesday morning
	return a
}

func TestAssembleEmptyListSkipsGeneration(t *testing.T) {
	gen := &fakeGenerator{}
	a := newTestAssembler(gen)

	b := a.Assemble(context.Background(), nil)

	if gen.calls != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls)
	}
	if b.Stats != (Stats{}) {
		t.Errorf("stats = %+v, want zero", b.Stats)
	}
	if b.FocusTask != nil {
		t.Errorf("focusTask = %+v, want nil", b.FocusTask)
	}
	if b.Insight != nil {
		t.Errorf("insight = %v, want nil", *b.Insight)
	}
	if b.Greeting != "Good morning! ☀️" {
		t.Errorf("greeting = %q", b.Greeting)
	}
	if !strings.Contains(b.Summary, "task list is empty") {
		t.Errorf("summary = %q", b.Summary)
	}
}

func TestAssembleHonorsModelFocusChoice(t *testing.T) {
	day := 24 * time.Hour
	tasks := []Task{
		{ID: "t1", Title: "urgent", Status: StatusToDo, Priority: PriorityHigh, DueDate: due(-day)},
		{ID: "t2", Title: "calm", Status: StatusToDo, Priority: PriorityLow},
	}

	// The model picks the lower-urgency task. Its choice is valid, so it
	// stands; the ranking only overrides invalid ids.
	gen := &fakeGenerator{text: `{"summary": "s", "focusTaskId": "t2", "insight": "tip", "emoji": "🔥"}`}
	a := newTestAssembler(gen)

	b := a.Assemble(context.Background(), tasks)

	if b.FocusTask == nil || b.FocusTask.ID != "t2" {
		t.Fatalf("focusTask = %+v, want t2", b.FocusTask)
	}
	if b.Greeting != "Good morning! 🔥" {
		t.Errorf("greeting = %q", b.Greeting)
	}
	if b.Insight == nil || *b.Insight != "tip" {
		t.Errorf("insight = %v", b.Insight)
	}
	if b.Summary != "s" {
		t.Errorf("summary = %q", b.Summary)
	}
}

func TestAssembleSubstitutesInvalidFocusID(t *testing.T) {
	day := 24 * time.Hour
	tasks := []Task{
		{ID: "t1", Title: "urgent", Status: StatusToDo, Priority: PriorityHigh, DueDate: due(-day)},
		{ID: "t2", Title: "calm", Status: StatusToDo, Priority: PriorityLow},
	}

	gen := &fakeGenerator{text: `{"summary": "s", "focusTaskId": "made-up-id", "insight": "tip", "emoji": "✅"}`}
	a := newTestAssembler(gen)

	b := a.Assemble(context.Background(), tasks)

	if b.FocusTask == nil || b.FocusTask.ID != "t1" {
		t.Fatalf("focusTask = %+v, want top-ranked t1", b.FocusTask)
	}
}

func TestAssembleFallbackOnProviderOutage(t *testing.T) {
	day := 24 * time.Hour
	tasks := []Task{
		{ID: "t1", Title: "urgent", Status: StatusToDo, Priority: PriorityHigh, DueDate: due(-day)},
		{ID: "t2", Title: "calm", Status: StatusToDo, Priority: PriorityLow},
	}

	gen := &fakeGenerator{err: &ai.AllFailedError{}}
	a := newTestAssembler(gen)

	b := a.Assemble(context.Background(), tasks)

	if b.FocusTask == nil || b.FocusTask.ID != "t1" {
		t.Fatalf("focusTask = %+v, want top-ranked t1", b.FocusTask)
	}
	if !strings.Contains(b.Summary, "1 overdue task") {
		t.Errorf("summary = %q", b.Summary)
	}
	if b.Insight == nil || *b.Insight != "Start with overdue tasks to reduce stress" {
		t.Errorf("insight = %v", b.Insight)
	}
	if b.Greeting != "Good morning! ☀️" {
		t.Errorf("greeting = %q", b.Greeting)
	}
	if b.Stats.Total != 2 || b.Stats.Overdue != 1 {
		t.Errorf("stats = %+v", b.Stats)
	}
	if !b.Degraded {
		t.Error("Degraded = false, want true")
	}
}

func TestAssembleFallbackOnMalformedOutput(t *testing.T) {
	tasks := []Task{
		{ID: "t1", Title: "only", Status: StatusInProgress, Priority: PriorityMedium},
	}

	gen := &fakeGenerator{text: "I could not produce JSON today, sorry."}
	a := newTestAssembler(gen)

	b := a.Assemble(context.Background(), tasks)

	if b.FocusTask == nil || b.FocusTask.ID != "t1" {
		t.Fatalf("focusTask = %+v, want t1", b.FocusTask)
	}
	if !strings.Contains(b.Summary, "in progress") {
		t.Errorf("summary = %q", b.Summary)
	}
	if b.Insight == nil || *b.Insight != "Small wins build momentum" {
		t.Errorf("insight = %v", b.Insight)
	}
}

func TestAssembleFallbackMessagePrecedence(t *testing.T) {
	day := 24 * time.Hour

	tests := []struct {
		name string
		task Task
		want string
	}{
		{
			name: "overdue wins",
			task: Task{ID: "t", Status: StatusToDo, DueDate: due(-day)},
			want: "overdue",
		},
		{
			name: "due today",
			task: Task{ID: "t", Status: StatusToDo, DueDate: due(time.Hour)},
			want: "due today",
		},
		{
			name: "high priority",
			task: Task{ID: "t", Status: StatusToDo, Priority: PriorityHigh},
			want: "high priority",
		},
		{
			name: "in progress",
			task: Task{ID: "t", Status: StatusInProgress},
			want: "in progress",
		},
		{
			name: "generic",
			task: Task{ID: "t", Status: StatusToDo},
			want: "Pick one and make progress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{err: &ai.AllFailedError{}}
			a := newTestAssembler(gen)

			b := a.Assemble(context.Background(), []Task{tt.task})
			if !strings.Contains(b.Summary, tt.want) {
				t.Errorf("summary = %q, want mention of %q", b.Summary, tt.want)
			}
		})
	}
}

func TestAssemblePromptCapsAtEightTasks(t *testing.T) {
	var tasks []Task
	for i := 0; i < 12; i++ {
		tasks = append(tasks, Task{
			ID:       fmt.Sprintf("t%d", i),
			Title:    fmt.Sprintf("task %d", i),
			Status:   StatusToDo,
			Priority: PriorityMedium,
		})
	}

	gen := &fakeGenerator{text: `{"summary": "s", "focusTaskId": "t0", "insight": "", "emoji": ""}`}
	a := newTestAssembler(gen)
	a.Assemble(context.Background(), tasks)

	if got := strings.Count(gen.lastPrompt, `"id"`); got != 8 {
		t.Errorf("prompt embeds %d tasks, want 8", got)
	}
	if !strings.Contains(gen.lastPrompt, "urgencyScore") {
		t.Error("prompt must include computed urgency scores")
	}
	if !strings.Contains(gen.lastPrompt, "Productivity score:") {
		t.Error("prompt must include the productivity score")
	}
}

func TestAssembleDefaultEmoji(t *testing.T) {
	tasks := []Task{{ID: "t1", Title: "only", Status: StatusToDo}}

	gen := &fakeGenerator{text: `{"summary": "s", "focusTaskId": "t1", "insight": "", "emoji": ""}`}
	a := newTestAssembler(gen)

	b := a.Assemble(context.Background(), tasks)
	if b.Greeting != "Good morning! ✨" {
		t.Errorf("greeting = %q", b.Greeting)
	}
	if b.Insight != nil {
		t.Errorf("empty insight must map to null, got %v", *b.Insight)
	}
}

func TestTimeOfDay(t *testing.T) {
	tests := []struct {
		hour         int
		wantGreeting string
	}{
		{7, "Good morning"},
		{12, "Good afternoon"},
		{16, "Good afternoon"},
		{17, "Good evening"},
		{20, "Good evening"},
		{21, "Working late"},
		{2, "Working late"},
		{5, "Good morning"},
	}

	for _, tt := range tests {
		now := time.Date(2026, 2, 10, tt.hour, 0, 0, 0, time.UTC)
		greeting, _ := timeOfDay(now)
		if greeting != tt.wantGreeting {
			t.Errorf("hour %d: greeting = %q, want %q", tt.hour, greeting, tt.wantGreeting)
		}
	}
}
