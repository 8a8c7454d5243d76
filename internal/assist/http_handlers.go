package assist

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"flowspace-backend/internal/analytics"
	"flowspace-backend/internal/briefing"
	"flowspace-backend/internal/links"
)

type Handler struct {
	Service   *Service
	Assembler *briefing.Assembler
	Scraper   *links.Scraper
	DB        *sql.DB
}

func NewHandler(service *Service, assembler *briefing.Assembler, scraper *links.Scraper, db *sql.DB) *Handler {
	return &Handler{Service: service, Assembler: assembler, Scraper: scraper, DB: db}
}

// GenerateTasks handles POST /api/ai/generate-tasks.
func (h *Handler) GenerateTasks(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Prompt == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	drafts, err := h.Service.GenerateTasks(r.Context(), body.Prompt)
	if err != nil {
		log.Printf("[assist] generate tasks failed: %v", err)
		writeError(w, "Failed to generate tasks")
		return
	}

	analytics.Log(r.Context(), h.DB, analytics.EventGenerateTasks, map[string]any{"count": len(drafts)})
	writeJSON(w, drafts)
}

// EnrichTask handles POST /api/ai/enrich-task.
func (h *Handler) EnrichTask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	enrichment, err := h.Service.EnrichTask(r.Context(), body.Title, body.Description)
	if err != nil {
		log.Printf("[assist] enrich task failed: %v", err)
		writeError(w, "Failed to enrich task")
		return
	}

	analytics.Log(r.Context(), h.DB, analytics.EventEnrichTask, map[string]any{"confidence": enrichment.Confidence})
	writeJSON(w, map[string]any{"suggestions": enrichment})
}

// Search handles POST /api/ai/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	result, err := h.Service.ParseSearch(r.Context(), body.Query)
	if err != nil {
		log.Printf("[assist] search parse failed: %v", err)
		writeError(w, "Failed to process search")
		return
	}

	analytics.Log(r.Context(), h.DB, analytics.EventSearch, map[string]any{"interpretation": result.Interpretation})
	writeJSON(w, result)
}

// EnrichLink handles POST /api/ai/enrich-link. Scraping failures are
// tolerated; generation failures fall back to whatever was scraped.
func (h *Handler) EnrichLink(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.URL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	meta, err := h.Scraper.Fetch(r.Context(), body.URL)
	if err != nil {
		log.Printf("[assist] scrape failed for %s: %v", body.URL, err)
	}

	suggestion, err := h.Service.EnrichLink(r.Context(), body.URL, meta)
	if err != nil {
		log.Printf("[assist] link enrichment failed, returning scraped data: %v", err)
		title := meta.Title
		if title == "" {
			title = "New Link"
		}
		suggestion = &LinkSuggestion{
			Title:       title,
			Description: meta.Description,
			Image:       meta.Image,
			Category:    "Other",
		}
	}

	analytics.Log(r.Context(), h.DB, analytics.EventEnrichLink, map[string]any{"category": suggestion.Category})
	writeJSON(w, suggestion)
}

// Briefing handles POST /api/ai/briefing. The assembler never fails; a
// generation outage degrades to the rule-based summary, so this endpoint
// always answers 200.
func (h *Handler) Briefing(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tasks []briefing.Task `json:"tasks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	b := h.Assembler.Assemble(r.Context(), body.Tasks)

	event := analytics.EventBriefing
	if b.Degraded {
		event = analytics.EventBriefingFallback
	}
	analytics.Log(r.Context(), h.DB, event, map[string]any{
		"total":   b.Stats.Total,
		"overdue": b.Stats.Overdue,
		"score":   b.Productivity.Score,
	})
	writeJSON(w, b)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
