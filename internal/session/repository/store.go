package repository

import (
	"context"

	"github.com/printcon-atlas/atlas-backend/internal/session/domain"
)

// UpdateFunc mutates a loaded session. Returning an error aborts the write.
type UpdateFunc func(s *domain.Session) error

// Store persists sessions. Update runs fn as one read-modify-write cycle so
// that two requests on the same session never interleave.
type Store interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, id string, fn UpdateFunc) (*domain.Session, error)
}
