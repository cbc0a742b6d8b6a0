package repository

import (
	"context"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrSessionNotFound is returned when a session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores server-side visitor sessions.
type SessionRepository interface {
	// FindByID retrieves a session regardless of its expiry.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// Save inserts or replaces the session.
	Save(ctx context.Context, session *entity.Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes sessions that expired before now and reports how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
