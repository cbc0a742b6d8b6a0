package auth

import (
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// sessionTokenService signs session cookie values with HS256.
type sessionTokenService struct {
	secret []byte
	now    func() time.Time
}

// NewSessionTokenService is the constructor for the session cookie signer.
func NewSessionTokenService(cfg *config.Config) (service.SessionTokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session secret must be provided")
	}

	return &sessionTokenService{
		secret: []byte(cfg.SecretKey.Session),
		now:    time.Now,
	}, nil
}

// Issue signs a token referencing the session until expiresAt.
func (s *sessionTokenService) Issue(sessionID uuid.UUID, expiresAt time.Time) (string, error) {
	claims := service.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Parse verifies the signature and expiry and returns the session id.
func (s *sessionTokenService) Parse(token string) (uuid.UUID, error) {
	claims := &service.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, domainerrors.ErrSessionInvalid.WrapMessage("parse session token")
	}
	if claims.SessionID == uuid.Nil {
		return uuid.Nil, domainerrors.ErrSessionInvalid.WrapMessage("missing session id")
	}

	return claims.SessionID, nil
}
