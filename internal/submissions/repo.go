package submissions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS project_submissions (
  id               UUID PRIMARY KEY,
  url              TEXT NOT NULL UNIQUE,
  contributor_name TEXT NOT NULL DEFAULT '',
  status           TEXT NOT NULL DEFAULT 'pending',
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const defaultListLimit = 50

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create submissions table: %w", err)
	}
	return nil
}

// Create stores a pending submission. A URL that was already submitted
// yields ErrDuplicateSubmission.
func (r *Repo) Create(ctx context.Context, rawURL, contributor string) (*Submission, error) {
	u, name, err := Normalize(rawURL, contributor)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO project_submissions (id, url, contributor_name, status)
VALUES ($1, $2, $3, $4)
RETURNING id, url, contributor_name, status, created_at;
`
	var s Submission
	err = r.db.QueryRowContext(ctx, q, uuid.New().String(), u, name, StatusPending).
		Scan(&s.ID, &s.URL, &s.ContributorName, &s.Status, &s.CreatedAt)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateSubmission
		}
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	return &s, nil
}

// List returns the newest submissions first.
func (r *Repo) List(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultListLimit
	}

	const q = `
SELECT id, url, contributor_name, status, created_at
FROM project_submissions
ORDER BY created_at DESC
LIMIT $1;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	out := make([]Submission, 0, 16)
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.URL, &s.ContributorName, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
