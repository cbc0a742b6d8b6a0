package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/validation"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service   usecase.UserUsecase
	userRepo  *mockRepo.MockUserRepository
	orderRepo *mockRepo.MockOrderRepository
	hasher    *mockSvc.MockPasswordHasher
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	service := NewUserService(UserServiceParams{
		UserRepo:       userRepo,
		OrderRepo:      orderRepo,
		PasswordHasher: hasher,
		Logger:         discardLogger(),
	})

	return userServiceFixtures{
		service:   service,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		hasher:    hasher,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	input := usecase.RegisterInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password1: "Str0ng!Passw0rd",
		Password2: "Str0ng!Passw0rd",
	}

	fx.hasher.EXPECT().ValidatePasswordStrength("Str0ng!Passw0rd", "alice").Return(nil)
	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("Str0ng!Passw0rd").Return("hashed", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(user *entity.User) bool {
			return user.Username == "alice" && user.PasswordHash == "hashed" &&
				user.IsActive && !user.IsStaff && !user.IsSuperuser
		})).
		RunAndReturn(func(_ context.Context, user *entity.User) error {
			user.ID = uuid.New()

			return nil
		})

	user, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestUserService_Register_FormErrors(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(&entity.User{ID: uuid.New(), Username: "alice"}, nil)

	_, err := fx.service.Register(ctx, usecase.RegisterInput{
		Username:  "alice",
		Password1: "one",
		Password2: "two",
	})

	var formErrors validation.FormErrors
	require.True(t, errors.As(err, &formErrors))
	assert.Equal(t, []string{msgPasswordMismatch}, formErrors.Get("password2"))
	assert.Equal(t, []string{msgUsernameTaken}, formErrors.Get("username"))
}

func TestUserService_Register_WeakPassword(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	weak := []string{"This password is too short. It must contain at least 8 characters.", "This password is entirely numeric."}
	fx.hasher.EXPECT().ValidatePasswordStrength("123", "bob").Return(weak)
	fx.userRepo.EXPECT().FindByUsername(ctx, "bob").Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Register(ctx, usecase.RegisterInput{Username: "bob", Password1: "123", Password2: "123"})

	var formErrors validation.FormErrors
	require.True(t, errors.As(err, &formErrors))
	assert.Equal(t, weak, formErrors.Get("password2"))
}

func TestUserService_Register_DuplicateOnInsert(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().ValidatePasswordStrength(mock.Anything, "alice").Return(nil)
	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash(mock.Anything).Return("hashed", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrDuplicateUsername)

	_, err := fx.service.Register(ctx, usecase.RegisterInput{Username: "alice", Password1: "Pa55word!x", Password2: "Pa55word!x"})

	var formErrors validation.FormErrors
	require.True(t, errors.As(err, &formErrors))
	assert.Equal(t, []string{msgUsernameTaken}, formErrors.Get("username"))
}

func TestUserService_CreateUser(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("pw").Return("hashed", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(user *entity.User) bool { return user.IsStaff && user.IsSuperuser })).
		Return(nil)

	user, err := fx.service.CreateUser(ctx, usecase.CreateUserInput{
		Username:    "admin",
		Password:    "pw",
		IsStaff:     true,
		IsSuperuser: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
}

func TestUserService_CreateUser_Errors(t *testing.T) {
	t.Run("missing password", func(t *testing.T) {
		fx := createTestUserService(t)

		_, err := fx.service.CreateUser(context.Background(), usecase.CreateUserInput{Username: "admin"})

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	})

	t.Run("duplicate", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.hasher.EXPECT().Hash("pw").Return("hashed", nil)
		fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrDuplicateUsername)

		_, err := fx.service.CreateUser(ctx, usecase.CreateUserInput{Username: "admin", Password: "pw"})

		assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
	})

	t.Run("database failure", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.hasher.EXPECT().Hash("pw").Return("hashed", nil)
		fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(errors.New("connection reset"))

		_, err := fx.service.CreateUser(ctx, usecase.CreateUserInput{Username: "admin", Password: "pw"})

		assert.True(t, errors.Is(err, domainerrors.ErrUserCreationFailed))
	})
}

func TestUserService_Authenticate(t *testing.T) {
	active := &entity.User{ID: uuid.New(), Username: "alice", PasswordHash: "hash", IsActive: true}
	inactive := &entity.User{ID: uuid.New(), Username: "carol", PasswordHash: "hash"}

	t.Run("success", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(active, nil)
		fx.hasher.EXPECT().Check("secret", "hash").Return(true)

		user, err := fx.service.Authenticate(ctx, "alice", "secret")

		require.NoError(t, err)
		assert.Equal(t, active, user)
	})

	t.Run("wrong password", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(active, nil)
		fx.hasher.EXPECT().Check("nope", "hash").Return(false)

		_, err := fx.service.Authenticate(ctx, "alice", "nope")

		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("unknown user", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrUserNotFound)

		_, err := fx.service.Authenticate(ctx, "ghost", "secret")

		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("inactive user", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByUsername(ctx, "carol").Return(inactive, nil)

		_, err := fx.service.Authenticate(ctx, "carol", "secret")

		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})
}

func TestUserService_ListOrders(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	orders := []*entity.Order{{ID: 2, UserID: userID, Status: entity.OrderStatusPending, CreatedAt: time.Now()}}
	fx.orderRepo.EXPECT().ListByUser(ctx, userID).Return(orders, nil)

	got, err := fx.service.ListOrders(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, orders, got)
}
