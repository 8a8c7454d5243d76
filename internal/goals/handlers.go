package goals

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"flowspace-backend/internal/auth"
)

// ListGoalsHandler returns the user's goals, optionally narrowed by scope.
func ListGoalsHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		scope := r.URL.Query().Get("scope")
		query := `
			SELECT id, text, scope, completed, created_at
			FROM goals
			WHERE user_id = $1`
		args := []any{uid}
		if scope != "" {
			query += ` AND scope = $2`
			args = append(args, scope)
		}
		query += ` ORDER BY created_at ASC`

		rows, err := dbx.QueryContext(r.Context(), query, args...)
		if err != nil {
			http.Error(w, "db query error", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		goals := []Goal{}
		for rows.Next() {
			var g Goal
			if err := rows.Scan(&g.ID, &g.Text, &g.Scope, &g.Completed, &g.CreatedAt); err != nil {
				http.Error(w, "db scan error", http.StatusInternalServerError)
				return
			}
			goals = append(goals, g)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(goals)
	}
}

// CreateGoalHandler adds one goal to a scope.
func CreateGoalHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Text  string `json:"text"`
			Scope string `json:"scope"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		body.Text = strings.TrimSpace(body.Text)
		if body.Text == "" {
			http.Error(w, "text is required", http.StatusBadRequest)
			return
		}
		if !ValidScope(body.Scope) {
			http.Error(w, "invalid scope", http.StatusBadRequest)
			return
		}

		g := Goal{
			ID:    uuid.NewString(),
			Text:  body.Text,
			Scope: body.Scope,
		}
		var createdAt time.Time
		err := dbx.QueryRowContext(r.Context(), `
			INSERT INTO goals (id, user_id, text, scope)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at
		`, g.ID, uid, g.Text, g.Scope).Scan(&createdAt)
		if err != nil {
			http.Error(w, "db insert error", http.StatusInternalServerError)
			return
		}
		g.CreatedAt = createdAt

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(g)
	}
}

// GoalItemHandler toggles/edits (PUT) or removes (DELETE) one goal.
func GoalItemHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		id := r.PathValue("id")

		switch r.Method {
		case http.MethodPut:
			var body struct {
				Text      *string `json:"text"`
				Completed *bool   `json:"completed"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}

			var g Goal
			err := dbx.QueryRowContext(r.Context(), `
				UPDATE goals
				SET text = COALESCE($3, text),
				    completed = COALESCE($4, completed)
				WHERE user_id = $1 AND id = $2
				RETURNING id, text, scope, completed, created_at
			`, uid, id, body.Text, body.Completed).
				Scan(&g.ID, &g.Text, &g.Scope, &g.Completed, &g.CreatedAt)
			if err != nil {
				http.Error(w, "goal not found", http.StatusNotFound)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(g)

		case http.MethodDelete:
			res, err := dbx.ExecContext(r.Context(),
				`DELETE FROM goals WHERE user_id = $1 AND id = $2`, uid, id)
			if err != nil {
				http.Error(w, "db delete error", http.StatusInternalServerError)
				return
			}
			if n, _ := res.RowsAffected(); n == 0 {
				http.Error(w, "goal not found", http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Goal removed."})

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
