package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByUsername retrieves a single user by username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.findOne(ctx, "username = ?", username)
}

func (repo *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where(query, arg).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user. A zero ID is replaced with a fresh UUIDv7.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate user id")
		}
		user.ID = id
	}
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now().UTC()
	}

	if err := repo.db.WithContext(ctx).Create(fromUserDomain(user)).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUsername
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	return nil
}

// UpdateLastLogin stamps the last successful login time.
func (repo *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("last_login", at)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update last login")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		IsStaff:      data.IsStaff,
		IsSuperuser:  data.IsSuperuser,
		IsActive:     data.IsActive,
		DateJoined:   data.DateJoined,
		LastLogin:    data.LastLogin,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		IsStaff:      data.IsStaff,
		IsSuperuser:  data.IsSuperuser,
		IsActive:     data.IsActive,
		DateJoined:   data.DateJoined,
		LastLogin:    data.LastLogin,
	}
}
