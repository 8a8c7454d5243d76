package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"flowspace-backend/internal/auth"
)

// Event names for the AI feature surface.
const (
	EventGenerateTasks    = "ai_generate_tasks"
	EventEnrichTask       = "ai_enrich_task"
	EventSearch           = "ai_search"
	EventEnrichLink       = "ai_enrich_link"
	EventBriefing         = "ai_briefing"
	EventBriefingFallback = "ai_briefing_fallback"
)

// Log inserts one usage event. Best-effort: analytics must never block or
// fail the request it annotates, so every error here is swallowed.
func Log(ctx context.Context, db *sql.DB, eventName string, props any) {
	if db == nil || eventName == "" {
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return
	}

	b, err := json.Marshal(props)
	if err != nil {
		b = []byte("{}")
	}

	_, _ = db.ExecContext(ctx, `
		INSERT INTO analytics_events (event_name, event_time, user_id, properties)
		VALUES ($1, $2, $3, $4::jsonb)
	`, eventName, time.Now().UTC(), userID, string(b))
}
