package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the registration form after structural validation.
type RegisterInput struct {
	Username  string
	Email     string
	Password1 string
	Password2 string
}

// CreateUserInput defines an account created by an operator.
type CreateUserInput struct {
	Username    string
	Email       string
	Password    string
	IsStaff     bool
	IsSuperuser bool
}

// UserUsecase defines account operations.
type UserUsecase interface {
	// Register creates a regular account. Invalid input yields validation.FormErrors.
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)

	// CreateUser creates an account without password strength checks.
	CreateUser(ctx context.Context, input CreateUserInput) (*entity.User, error)

	// Authenticate checks credentials and returns ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)

	// ListOrders returns the user's orders newest first.
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
}
