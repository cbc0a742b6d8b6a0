package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultSessionTTL = 14 * 24 * time.Hour

	// LoggedOutMessage is flashed on the session that replaces a logged-out one.
	LoggedOutMessage = "You have successfully logged out."
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	txManager   repository.TransactionManager
	tokens      service.SessionTokenService
	ttl         time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	SessionRepo repository.SessionRepository
	UserRepo    repository.UserRepository
	TxManager   repository.TransactionManager
	Tokens      service.SessionTokenService
	Config      *config.Config
	Logger      *slog.Logger
}

// NewSessionService creates a new session service instance
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	ttl := defaultSessionTTL
	if params.Config != nil && params.Config.Session != nil && params.Config.Session.MaxAge > 0 {
		ttl = params.Config.Session.MaxAge
	}

	return &sessionService{
		sessionRepo: params.SessionRepo,
		userRepo:    params.UserRepo,
		txManager:   params.TxManager,
		tokens:      params.Tokens,
		ttl:         ttl,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Resolve loads the visitor state for a cookie value.
func (srv *sessionService) Resolve(ctx context.Context, token string) (*usecase.SessionState, error) {
	now := srv.now().UTC()
	if token == "" {
		return srv.fresh(now), nil
	}

	sessionID, err := srv.tokens.Parse(token)
	if err != nil {
		srv.log(ctx).Debug("Discarding session cookie", slog.Any("error", err))

		return srv.fresh(now), nil
	}

	session, err := srv.sessionRepo.FindByID(ctx, sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return srv.fresh(now), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}

	if session.Expired(now) {
		return srv.fresh(now), nil
	}

	state := &usecase.SessionState{Session: session}
	if session.UserID == nil {
		return state, nil
	}

	user, err := srv.userRepo.FindByID(ctx, *session.UserID)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		session.UserID = nil
	case err != nil:
		return nil, errors.Wrap(err, "failed to load session user")
	case !user.IsActive:
		session.UserID = nil
	default:
		state.User = user
	}

	return state, nil
}

func (srv *sessionService) fresh(now time.Time) *usecase.SessionState {
	return &usecase.SessionState{Session: entity.NewSession(now, srv.ttl), IsNew: true}
}

// Save persists the session.
func (srv *sessionService) Save(ctx context.Context, session *entity.Session) error {
	if err := srv.sessionRepo.Save(ctx, session); err != nil {
		return errors.Wrap(err, "failed to save session")
	}

	return nil
}

// IssueToken signs the cookie value for the session.
func (srv *sessionService) IssueToken(session *entity.Session) (string, error) {
	return srv.tokens.Issue(session.ID, session.ExpiresAt)
}

// Login moves the session data to a new id owned by user.
func (srv *sessionService) Login(ctx context.Context, session *entity.Session, user *entity.User) (*entity.Session, error) {
	now := srv.now().UTC()
	userID := user.ID

	next := entity.NewSession(now, srv.ttl)
	next.UserID = &userID
	next.Cart = session.Cart
	next.Flashes = session.Flashes
	if next.Cart == nil {
		next.Cart = entity.Cart{}
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessions := repoFactory.NewSessionRepository()
		if err := sessions.Save(ctx, next); err != nil {
			return err
		}
		if err := sessions.Delete(ctx, session.ID); err != nil {
			return err
		}

		return repoFactory.NewUserRepository().UpdateLastLogin(ctx, userID, now)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to log in")
	}

	user.LastLogin = &now
	srv.log(ctx).Info("User logged in", slog.String("userID", userID.String()))

	return next, nil
}

// Logout discards the session and starts a new anonymous one.
func (srv *sessionService) Logout(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	next := entity.NewSession(srv.now().UTC(), srv.ttl)
	next.AddFlash(entity.FlashInfo, LoggedOutMessage)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessions := repoFactory.NewSessionRepository()
		if err := sessions.Delete(ctx, session.ID); err != nil {
			return err
		}

		return sessions.Save(ctx, next)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to log out")
	}

	if session.UserID != nil {
		srv.log(ctx).Info("User logged out", slog.String("userID", session.UserID.String()))
	}

	return next, nil
}

// PurgeExpired deletes every session past its expiry.
func (srv *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	removed, err := srv.sessionRepo.DeleteExpired(ctx, srv.now().UTC())
	if err != nil {
		return 0, errors.Wrap(err, "failed to purge sessions")
	}

	srv.log(ctx).Info("Expired sessions purged", slog.Int64("removed", removed))

	return removed, nil
}

