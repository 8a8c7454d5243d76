package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// ListQuery narrows and orders a task listing. Zero values mean "no
// constraint". The field set matches the vocabulary the search parser emits.
type ListQuery struct {
	Status        string
	Priority      string
	TitleContains string
	DueBefore     *time.Time
	DueAfter      *time.Time
	SortBy        string
	SortDesc      bool
}

var sortColumns = map[string]string{
	"createdAt": "created_at",
	"dueDate":   "due_date",
	"priority":  "priority",
	"status":    "status",
	"title":     "title",
}

func (s *Store) Create(ctx context.Context, t *Task) error {
	t.ID = uuid.NewString()
	if t.Status == "" {
		t.Status = StatusToDo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}

	row := s.DB.QueryRowContext(ctx, `
		INSERT INTO tasks (id, user_id, title, description, status, priority, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, t.ID, t.UserID, t.Title, t.Description, t.Status, t.Priority, t.DueDate)

	return row.Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (s *Store) List(ctx context.Context, userID string, q ListQuery) ([]Task, error) {
	where := []string{"user_id = $1"}
	args := []any{userID}

	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if q.Status != "" {
		add("status = $%d", q.Status)
	}
	if q.Priority != "" {
		add("priority = $%d", q.Priority)
	}
	if q.TitleContains != "" {
		add("title ILIKE $%d", "%"+q.TitleContains+"%")
	}
	if q.DueBefore != nil {
		add("due_date <= $%d", *q.DueBefore)
	}
	if q.DueAfter != nil {
		add("due_date >= $%d", *q.DueAfter)
	}

	sortCol, ok := sortColumns[q.SortBy]
	if !ok {
		sortCol = "created_at"
		q.SortDesc = true
	}
	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, title, description, status, priority, due_date, created_at, updated_at
		FROM tasks
		WHERE %s
		ORDER BY %s %s
	`, strings.Join(where, " AND "), sortCol, dir)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, userID, id string) (*Task, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, user_id, title, description, status, priority, due_date, created_at, updated_at
		FROM tasks
		WHERE user_id = $1 AND id = $2
	`, userID, id)

	var t Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) Update(ctx context.Context, t *Task) error {
	row := s.DB.QueryRowContext(ctx, `
		UPDATE tasks
		SET title = $3, description = $4, status = $5, priority = $6, due_date = $7, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING updated_at
	`, t.UserID, t.ID, t.Title, t.Description, t.Status, t.Priority, t.DueDate)

	return row.Scan(&t.UpdatedAt)
}

func (s *Store) Delete(ctx context.Context, userID, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1 AND id = $2`, userID, id)
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
