package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the payload of the signed session cookie.
type SessionClaims struct {
	SessionID uuid.UUID `json:"sid"`
	jwt.RegisteredClaims
}

// SessionTokenService signs and verifies session cookie values.
type SessionTokenService interface {
	// Issue signs a token that references the session until expiresAt.
	Issue(sessionID uuid.UUID, expiresAt time.Time) (string, error)

	// Parse verifies the token signature and expiry and returns the session id.
	Parse(token string) (uuid.UUID, error)
}
