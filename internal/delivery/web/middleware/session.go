package middleware

import (
	"log/slog"
	"net/http"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// visitor is the per-request session holder stored on echo.Context.
type visitor struct {
	state    *usecase.SessionState
	sessions usecase.SessionUsecase

	saved        bool // The session row was written during this request.
	cookieIssued bool // The browser already holds a cookie for state.Session.
}

// SessionMiddleware resolves the visitor session from the session cookie.
type SessionMiddleware struct {
	sessions usecase.SessionUsecase
	cfg      *config.SessionConfig
	logger   *slog.Logger
}

// NewSessionMiddleware creates the session middleware.
func NewSessionMiddleware(sessions usecase.SessionUsecase, cfg *config.Config, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		cfg:      cfg.Session,
		logger:   logger,
	}
}

// Load resolves the session before the handler runs. The cookie is written right before the
// response headers when the session was stored under an id the browser does not know yet.
func (m *SessionMiddleware) Load(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := ""
		if cookie, err := c.Cookie(m.cfg.CookieName); err == nil {
			token = cookie.Value
		}

		state, err := m.sessions.Resolve(c.Request().Context(), token)
		if err != nil {
			return errors.Wrap(err, "resolve session")
		}

		v := &visitor{
			state:        state,
			sessions:     m.sessions,
			cookieIssued: !state.IsNew,
		}
		c.Set(string(deliverycontext.KeySession), v)

		c.Response().Before(func() {
			m.writeCookie(c, v)
		})

		if state.User != nil {
			ctx := c.Request().Context()
			logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.String("user", state.User.Username))
			c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, logger)))
		}

		return next(c)
	}
}

func (m *SessionMiddleware) writeCookie(c echo.Context, v *visitor) {
	if !v.saved || v.cookieIssued {
		return
	}

	session := v.state.Session
	token, err := m.sessions.IssueToken(session)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Error("Failed to issue session cookie",
			slog.String("session_id", session.ID.String()),
			slog.Any("error", err),
		)

		return
	}

	c.SetCookie(&http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	v.cookieIssued = true
}

func getVisitor(c echo.Context) *visitor {
	v, _ := c.Get(string(deliverycontext.KeySession)).(*visitor)

	return v
}

// CurrentSession returns the visitor session, or nil outside the session middleware.
func CurrentSession(c echo.Context) *entity.Session {
	if v := getVisitor(c); v != nil {
		return v.state.Session
	}

	return nil
}

// CurrentUser returns the logged-in user, or nil for anonymous visitors.
func CurrentUser(c echo.Context) *entity.User {
	if v := getVisitor(c); v != nil {
		return v.state.User
	}

	return nil
}

// SaveSession persists the visitor session. Handlers call it before writing the response.
func SaveSession(c echo.Context) error {
	v := getVisitor(c)
	if v == nil {
		return errors.New("session middleware not installed")
	}

	if err := v.sessions.Save(c.Request().Context(), v.state.Session); err != nil {
		return errors.Wrap(err, "save session")
	}
	v.saved = true

	return nil
}

// ReplaceSession switches the request to a session that was already stored under a new id,
// as after login and logout. The new cookie is sent with the response.
func ReplaceSession(c echo.Context, session *entity.Session, user *entity.User) {
	v := getVisitor(c)
	if v == nil {
		return
	}

	v.state = &usecase.SessionState{Session: session, User: user}
	v.saved = true
	v.cookieIssued = false
}
