package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/domain/validation"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	msgPasswordMismatch = "The two password fields didn’t match."
	msgUsernameTaken    = "A user with that username already exists."
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo       repository.UserRepository
	orderRepo      repository.OrderRepository
	passwordHasher service.PasswordHasher
	logger         *slog.Logger
	now            func() time.Time
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo       repository.UserRepository
	OrderRepo      repository.OrderRepository
	PasswordHasher service.PasswordHasher
	Logger         *slog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:       params.UserRepo,
		orderRepo:      params.OrderRepo,
		passwordHasher: params.PasswordHasher,
		logger:         params.Logger,
		now:            time.Now,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a regular account from the sign-up form.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	username := strings.TrimSpace(input.Username)
	formErrors := validation.FormErrors{}

	if input.Password1 != input.Password2 {
		formErrors.Add("password2", msgPasswordMismatch)
	} else {
		for _, message := range srv.passwordHasher.ValidatePasswordStrength(input.Password2, username) {
			formErrors.Add("password2", message)
		}
	}

	_, err := srv.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		formErrors.Add("username", msgUsernameTaken)
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, errors.Wrap(err, "failed to check username")
	}

	if formErrors.HasErrors() {
		return nil, formErrors
	}

	user, err := srv.createUser(ctx, usecase.CreateUserInput{
		Username: username,
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password1,
	})
	if errors.Is(err, domainerrors.ErrUsernameTaken) {
		return nil, validation.FormErrors{"username": {msgUsernameTaken}}
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// CreateUser creates an account on behalf of an operator.
func (srv *userService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username and password are required")
	}

	return srv.createUser(ctx, input)
}

func (srv *userService) createUser(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error) {
	hash, err := srv.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		IsStaff:      input.IsStaff,
		IsSuperuser:  input.IsSuperuser,
		IsActive:     true,
		DateJoined:   srv.now().UTC(),
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, domainerrors.ErrUsernameTaken
		}

		return nil, errors.Wrap(domainerrors.ErrUserCreationFailed, err.Error())
	}

	srv.log(ctx).Info("User created",
		slog.String("userID", user.ID.String()),
		slog.String("username", user.Username),
		slog.Bool("isStaff", user.IsStaff),
		slog.Bool("isSuperuser", user.IsSuperuser),
	)

	return user, nil
}

// Authenticate verifies the credentials of an active account.
func (srv *userService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := srv.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	if !user.IsActive || !srv.passwordHasher.Check(password, user.PasswordHash) {
		srv.log(ctx).Info("Login rejected", slog.String("username", user.Username))

		return nil, domainerrors.ErrInvalidCredentials
	}

	return user, nil
}

// ListOrders returns the user's order history.
func (srv *userService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}
