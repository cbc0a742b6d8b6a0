package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// SessionState is the visitor state resolved from the session cookie.
type SessionState struct {
	Session *entity.Session
	User    *entity.User // Nil for anonymous visitors.
	IsNew   bool         // True when the session was started by this request and is not stored yet.
}

// SessionUsecase manages server-side sessions.
type SessionUsecase interface {
	// Resolve loads the session referenced by token. Missing, tampered and expired
	// tokens yield a fresh, unsaved anonymous session.
	Resolve(ctx context.Context, token string) (*SessionState, error)

	// Save persists the session.
	Save(ctx context.Context, session *entity.Session) error

	// IssueToken signs the cookie value for the session.
	IssueToken(session *entity.Session) (string, error)

	// Login replaces the session with a new id bound to user, keeping cart and flashes.
	Login(ctx context.Context, session *entity.Session, user *entity.User) (*entity.Session, error)

	// Logout deletes the session and returns a new, saved anonymous one.
	Logout(ctx context.Context, session *entity.Session) (*entity.Session, error)

	// PurgeExpired deletes expired sessions and reports how many were removed.
	PurgeExpired(ctx context.Context) (int64, error)
}
