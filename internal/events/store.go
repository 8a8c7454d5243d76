package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, e *Event) error {
	e.ID = uuid.NewString()
	if e.Color == "" {
		e.Color = "blue"
	}
	if e.Reminders == nil {
		e.Reminders = []Reminder{}
	}

	reminders, err := json.Marshal(e.Reminders)
	if err != nil {
		return err
	}

	row := s.DB.QueryRowContext(ctx, `
		INSERT INTO events (id, user_id, title, description, date, end_date, all_day, color, reminders)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb)
		RETURNING created_at, updated_at
	`, e.ID, e.UserID, e.Title, e.Description, e.Date, e.EndDate, e.AllDay, e.Color, string(reminders))

	return row.Scan(&e.CreatedAt, &e.UpdatedAt)
}

// List returns the user's events sorted by date, optionally bounded to a range.
func (s *Store) List(ctx context.Context, userID string, from, to *time.Time) ([]Event, error) {
	query := `
		SELECT id, user_id, title, description, date, end_date, all_day, color, reminders, created_at, updated_at
		FROM events
		WHERE user_id = $1`
	args := []any{userID}

	if from != nil && to != nil {
		query += ` AND date >= $2 AND date <= $3`
		args = append(args, *from, *to)
	}
	query += ` ORDER BY date ASC`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, userID, id string) (*Event, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, user_id, title, description, date, end_date, all_day, color, reminders, created_at, updated_at
		FROM events
		WHERE user_id = $1 AND id = $2
	`, userID, id)
	return scanEvent(row.Scan)
}

func (s *Store) Update(ctx context.Context, e *Event) error {
	reminders, err := json.Marshal(e.Reminders)
	if err != nil {
		return err
	}

	row := s.DB.QueryRowContext(ctx, `
		UPDATE events
		SET title = $3, description = $4, date = $5, end_date = $6, all_day = $7, color = $8, reminders = $9::jsonb, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING updated_at
	`, e.UserID, e.ID, e.Title, e.Description, e.Date, e.EndDate, e.AllDay, e.Color, string(reminders))

	return row.Scan(&e.UpdatedAt)
}

func (s *Store) Delete(ctx context.Context, userID, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM events WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanEvent(scan func(...any) error) (*Event, error) {
	var (
		e         Event
		reminders []byte
	)
	err := scan(&e.ID, &e.UserID, &e.Title, &e.Description, &e.Date, &e.EndDate, &e.AllDay, &e.Color, &reminders, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(reminders, &e.Reminders); err != nil {
		e.Reminders = []Reminder{}
	}
	return &e, nil
}
