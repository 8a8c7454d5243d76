package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flowspace-backend/internal/ai"
	"flowspace-backend/internal/links"
)

// Generator is the slice of the failover orchestrator the feature layer needs.
type Generator interface {
	Generate(ctx context.Context, req ai.GenerationRequest) (string, error)
}

// Service implements the AI-assisted features other than the briefing:
// breaking a goal into tasks, enriching a task, translating a search query,
// and summarizing a saved link. Unlike the briefing there is no safe
// deterministic substitute for these, so generation failures propagate.
type Service struct {
	gen Generator
	now func() time.Time
}

func NewService(gen Generator) *Service {
	return &Service{gen: gen, now: time.Now}
}

// TaskDraft is one step of a generated task breakdown.
type TaskDraft struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
	DueDateOffset int    `json:"dueDateOffset"`
}

// GenerateTasks breaks a free-form goal into 3-8 concrete task drafts.
func (s *Service) GenerateTasks(ctx context.Context, prompt string) ([]TaskDraft, error) {
	text, err := s.gen.Generate(ctx, ai.GenerationRequest{
		Prompt: fmt.Sprintf(generateTasksPrompt, prompt),
		Format: ai.FormatJSON,
	})
	if err != nil {
		return nil, err
	}

	// Models sometimes answer {"tasks": [...]} despite being told to return a
	// bare array.
	payload := ai.UnwrapArray([]byte(ai.ExtractJSON(text)), "tasks")

	var drafts []TaskDraft
	if err := json.Unmarshal(payload, &drafts); err != nil {
		return nil, &ai.MalformedOutputError{Raw: text, Err: err}
	}
	return drafts, nil
}

// Enrichment is the suggestion bundle for a single task.
type Enrichment struct {
	Priority   string   `json:"priority"`
	Tags       []string `json:"tags"`
	DueDate    string   `json:"dueDate"`
	Confidence float64  `json:"confidence"`
}

// EnrichTask suggests priority, tags, a due date and a confidence score for a
// task the user is writing.
func (s *Service) EnrichTask(ctx context.Context, title, description string) (*Enrichment, error) {
	if description == "" {
		description = "No description"
	}

	text, err := s.gen.Generate(ctx, ai.GenerationRequest{
		Prompt: fmt.Sprintf(enrichTaskPrompt, title, description),
		Format: ai.FormatJSON,
	})
	if err != nil {
		return nil, err
	}

	var raw struct {
		Priority      string   `json:"priority"`
		Tags          []string `json:"tags"`
		DueDateOffset int      `json:"dueDateOffset"`
		Confidence    float64  `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(ai.ExtractJSON(text)), &raw); err != nil {
		return nil, &ai.MalformedOutputError{Raw: text, Err: err}
	}

	offset := raw.DueDateOffset
	if offset == 0 {
		offset = 3
	}
	dueDate := s.now().AddDate(0, 0, offset).Format("2006-01-02")

	return &Enrichment{
		Priority:   raw.Priority,
		Tags:       raw.Tags,
		DueDate:    dueDate,
		Confidence: raw.Confidence,
	}, nil
}

// SearchFilters is the structured form of a natural-language task query. Empty
// fields mean "no constraint"; the task store knows how to apply it.
type SearchFilters struct {
	Priority      string `json:"priority,omitempty"`
	Status        string `json:"status,omitempty"`
	TitleContains string `json:"titleContains,omitempty"`
	DueBefore     string `json:"dueBefore,omitempty"`
	DueAfter      string `json:"dueAfter,omitempty"`
}

type SearchResult struct {
	Filters        SearchFilters `json:"filters"`
	Interpretation string        `json:"interpretation"`
}

// ParseSearch translates a natural-language query into task filters.
func (s *Service) ParseSearch(ctx context.Context, query string) (*SearchResult, error) {
	today := s.now().Format("2006-01-02")

	text, err := s.gen.Generate(ctx, ai.GenerationRequest{
		Prompt: fmt.Sprintf(searchPrompt, today, query),
		Format: ai.FormatJSON,
	})
	if err != nil {
		return nil, err
	}

	var result SearchResult
	if err := json.Unmarshal([]byte(ai.ExtractJSON(text)), &result); err != nil {
		return nil, &ai.MalformedOutputError{Raw: text, Err: err}
	}
	return &result, nil
}

// LinkSuggestion is the generated presentation of a saved link.
type LinkSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
}

// EnrichLink rewrites scraped page metadata into a punchy title, one-line
// description and category. The caller falls back to the raw metadata when
// this errors.
func (s *Service) EnrichLink(ctx context.Context, url string, meta links.PageMetadata) (*LinkSuggestion, error) {
	text, err := s.gen.Generate(ctx, ai.GenerationRequest{
		Prompt: fmt.Sprintf(enrichLinkPrompt, url, meta.Title, meta.Description, meta.Image),
		Format: ai.FormatJSON,
	})
	if err != nil {
		return nil, err
	}

	var suggestion LinkSuggestion
	if err := json.Unmarshal([]byte(ai.ExtractJSON(text)), &suggestion); err != nil {
		return nil, &ai.MalformedOutputError{Raw: text, Err: err}
	}
	if suggestion.Image == "" {
		suggestion.Image = meta.Image
	}
	return &suggestion, nil
}
