// Package repository stores onboarding sessions keyed by session ID.
package repository

import (
	"context"
	"errors"

	"sst_portal_backend/internal/onboarding/domain"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// MutateFunc changes a session in place. Returning an error discards the
// change.
type MutateFunc func(s *domain.Session) error

// SessionStore persists sessions. Update serialises mutations per session,
// so at most one transition is in flight for a given ID.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Update(ctx context.Context, id uuid.UUID, fn MutateFunc) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
