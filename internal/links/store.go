package links

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, l *Link) error {
	l.ID = uuid.NewString()
	if l.Category == "" {
		l.Category = "Other"
	}

	row := s.DB.QueryRowContext(ctx, `
		INSERT INTO links (id, user_id, url, title, description, image, category, favicon, is_pinned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, l.ID, l.UserID, l.URL, l.Title, l.Description, l.Image, l.Category, l.Favicon, l.IsPinned)

	return row.Scan(&l.CreatedAt, &l.UpdatedAt)
}

// List returns pinned links first, newest first within each group.
func (s *Store) List(ctx context.Context, userID string) ([]Link, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, user_id, url, title, description, image, category, favicon, is_pinned, created_at, updated_at
		FROM links
		WHERE user_id = $1
		ORDER BY is_pinned DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Link
	for rows.Next() {
		var l Link
		if err := rows.Scan(&l.ID, &l.UserID, &l.URL, &l.Title, &l.Description, &l.Image, &l.Category, &l.Favicon, &l.IsPinned, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, userID, id string) (*Link, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, user_id, url, title, description, image, category, favicon, is_pinned, created_at, updated_at
		FROM links
		WHERE user_id = $1 AND id = $2
	`, userID, id)

	var l Link
	err := row.Scan(&l.ID, &l.UserID, &l.URL, &l.Title, &l.Description, &l.Image, &l.Category, &l.Favicon, &l.IsPinned, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) Update(ctx context.Context, l *Link) error {
	row := s.DB.QueryRowContext(ctx, `
		UPDATE links
		SET url = $3, title = $4, description = $5, image = $6, category = $7, favicon = $8, is_pinned = $9, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING updated_at
	`, l.UserID, l.ID, l.URL, l.Title, l.Description, l.Image, l.Category, l.Favicon, l.IsPinned)

	return row.Scan(&l.UpdatedAt)
}

func (s *Store) TogglePin(ctx context.Context, userID, id string) (bool, error) {
	row := s.DB.QueryRowContext(ctx, `
		UPDATE links
		SET is_pinned = NOT is_pinned, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING is_pinned
	`, userID, id)

	var pinned bool
	err := row.Scan(&pinned)
	return pinned, err
}

func (s *Store) Delete(ctx context.Context, userID, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM links WHERE user_id = $1 AND id = $2`, userID, id)
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
