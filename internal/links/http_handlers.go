package links

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"flowspace-backend/internal/auth"
)

type Handler struct {
	Store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

type linkBody struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Favicon     string `json:"favicon"`
	IsPinned    bool   `json:"isPinned"`
}

// Collection handles GET (list) and POST (create) on /api/links.
func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		list, err := h.Store.List(r.Context(), uid)
		if err != nil {
			http.Error(w, "db query error", http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []Link{}
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var body linkBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.URL == "" || body.Title == "" {
			http.Error(w, "url and title are required", http.StatusBadRequest)
			return
		}
		if _, err := url.ParseRequestURI(body.URL); err != nil {
			http.Error(w, "invalid url", http.StatusBadRequest)
			return
		}

		l := Link{
			UserID:      uid,
			URL:         body.URL,
			Title:       body.Title,
			Description: body.Description,
			Image:       body.Image,
			Category:    body.Category,
			Favicon:     body.Favicon,
			IsPinned:    body.IsPinned,
		}
		if err := h.Store.Create(r.Context(), &l); err != nil {
			http.Error(w, "db insert error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, l)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item handles GET/PUT/DELETE on /api/links/{id}.
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := r.PathValue("id")

	l, err := h.Store.Get(r.Context(), uid, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "link not found", http.StatusNotFound)
			return
		}
		http.Error(w, "db query error", http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, l)

	case http.MethodPut:
		var body linkBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.URL != "" {
			l.URL = body.URL
		}
		if body.Title != "" {
			l.Title = body.Title
		}
		l.Description = body.Description
		l.Image = body.Image
		if body.Category != "" {
			l.Category = body.Category
		}
		l.Favicon = body.Favicon
		l.IsPinned = body.IsPinned

		if err := h.Store.Update(r.Context(), l); err != nil {
			http.Error(w, "db update error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, l)

	case http.MethodDelete:
		if err := h.Store.Delete(r.Context(), uid, id); err != nil {
			http.Error(w, "db delete error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Link removed."})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Pin handles POST /api/links/{id}/pin.
func (h *Handler) Pin(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pinned, err := h.Store.TogglePin(r.Context(), uid, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "link not found", http.StatusNotFound)
			return
		}
		http.Error(w, "db update error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"isPinned": pinned})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
