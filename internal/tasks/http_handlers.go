package tasks

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"flowspace-backend/internal/auth"
)

type Handler struct {
	Store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// Collection handles GET (list, with query filters) and POST (create) on
// /api/tasks.
func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, uid)
	case http.MethodPost:
		h.create(w, r, uid)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, uid string) {
	q := ListQuery{
		Status:        r.URL.Query().Get("status"),
		Priority:      r.URL.Query().Get("priority"),
		TitleContains: r.URL.Query().Get("q"),
	}

	if v := r.URL.Query().Get("dueBefore"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			q.DueBefore = &d
		}
	}
	if v := r.URL.Query().Get("dueAfter"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			q.DueAfter = &d
		}
	}
	// sortBy uses field:direction, e.g. dueDate:asc
	if v := r.URL.Query().Get("sortBy"); v != "" {
		field, dir, _ := cutSort(v)
		q.SortBy = field
		q.SortDesc = dir == "desc"
	}

	list, err := h.Store.List(r.Context(), uid, q)
	if err != nil {
		http.Error(w, "db query error", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []Task{}
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, uid string) {
	var body struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Status      string     `json:"status"`
		Priority    string     `json:"priority"`
		DueDate     *time.Time `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if body.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if body.Status != "" && !ValidStatus(body.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	if body.Priority != "" && !ValidPriority(body.Priority) {
		http.Error(w, "invalid priority", http.StatusBadRequest)
		return
	}

	t := Task{
		UserID:      uid,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
		DueDate:     body.DueDate,
	}
	if err := h.Store.Create(r.Context(), &t); err != nil {
		http.Error(w, "db insert error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

// Item handles GET/PUT/DELETE on /api/tasks/{id}.
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := r.PathValue("id")

	t, err := h.Store.Get(r.Context(), uid, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		http.Error(w, "db query error", http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, t)

	case http.MethodPut:
		var body struct {
			Title       *string    `json:"title"`
			Description *string    `json:"description"`
			Status      *string    `json:"status"`
			Priority    *string    `json:"priority"`
			DueDate     *time.Time `json:"dueDate"`
			ClearDue    bool       `json:"clearDueDate"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if body.Title != nil {
			t.Title = *body.Title
		}
		if body.Description != nil {
			t.Description = *body.Description
		}
		if body.Status != nil {
			if !ValidStatus(*body.Status) {
				http.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
			t.Status = *body.Status
		}
		if body.Priority != nil {
			if !ValidPriority(*body.Priority) {
				http.Error(w, "invalid priority", http.StatusBadRequest)
				return
			}
			t.Priority = *body.Priority
		}
		if body.DueDate != nil {
			t.DueDate = body.DueDate
		}
		if body.ClearDue {
			t.DueDate = nil
		}

		if err := h.Store.Update(r.Context(), t); err != nil {
			http.Error(w, "db update error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, t)

	case http.MethodDelete:
		if err := h.Store.Delete(r.Context(), uid, id); err != nil {
			http.Error(w, "db delete error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Task removed."})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func cutSort(v string) (field, dir string, ok bool) {
	for i := 0; i < len(v); i++ {
		if v[i] == ':' {
			return v[:i], v[i+1:], true
		}
	}
	return v, "", false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
