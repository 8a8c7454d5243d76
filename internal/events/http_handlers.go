package events

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

type eventBody struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	EndDate     *time.Time `json:"endDate"`
	AllDay      bool       `json:"allDay"`
	Color       string     `json:"color"`
	Reminders   []Reminder `json:"reminders"`
}

func validateBody(b *eventBody) string {
	if b.Color != "" && !ValidColor(b.Color) {
		return "invalid color"
	}
	for i := range b.Reminders {
		if b.Reminders[i].Type == "" {
			b.Reminders[i].Type = ReminderEmail
		}
		if !ValidReminderType(b.Reminders[i].Type) {
			return "invalid reminder type"
		}
		if b.Reminders[i].TimeBefore <= 0 {
			b.Reminders[i].TimeBefore = 30
		}
	}
	return ""
}

// Collection handles GET (list, optional startDate/endDate range) and POST on
// /api/events.
func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		var from, to *time.Time
		if s, e := r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"); s != "" && e != "" {
			start, err1 := time.Parse("2006-01-02", s)
			end, err2 := time.Parse("2006-01-02", e)
			if err1 == nil && err2 == nil {
				from, to = &start, &end
			}
		}

		list, err := h.Store.List(r.Context(), uid, from, to)
		if err != nil {
			http.Error(w, "db query error", http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []Event{}
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var body eventBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.Title == "" || body.Date == nil {
			http.Error(w, "title and date are required", http.StatusBadRequest)
			return
		}
		if msg := validateBody(&body); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		e := Event{
			UserID:      uid,
			Title:       body.Title,
			Description: body.Description,
			Date:        *body.Date,
			EndDate:     body.EndDate,
			AllDay:      body.AllDay,
			Color:       body.Color,
			Reminders:   body.Reminders,
		}
		if err := h.Store.Create(r.Context(), &e); err != nil {
			http.Error(w, "db insert error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, e)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item handles GET/PUT/DELETE on /api/events/{id}.
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := r.PathValue("id")

	e, err := h.Store.Get(r.Context(), uid, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		http.Error(w, "db query error", http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, e)

	case http.MethodPut:
		var body eventBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if msg := validateBody(&body); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		if body.Title != "" {
			e.Title = body.Title
		}
		e.Description = body.Description
		if body.Date != nil {
			e.Date = *body.Date
		}
		e.EndDate = body.EndDate
		e.AllDay = body.AllDay
		if body.Color != "" {
			e.Color = body.Color
		}
		if body.Reminders != nil {
			e.Reminders = body.Reminders
		}

		if err := h.Store.Update(r.Context(), e); err != nil {
			http.Error(w, "db update error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, e)

	case http.MethodDelete:
		if err := h.Store.Delete(r.Context(), uid, id); err != nil {
			http.Error(w, "db delete error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Event removed."})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
