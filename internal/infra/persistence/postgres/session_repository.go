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
	"gorm.io/gorm/clause"
)

// sessionRepository implements the repository.SessionRepository interface.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// FindByID retrieves a session regardless of its expiry.
func (repo *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var sessionM model.SessionModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find session")
	}

	return toSessionDomain(&sessionM), nil
}

// Save inserts the session or replaces the stored row.
func (repo *sessionRepository) Save(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "cart", "flashes", "expires_at", "updated_at"}),
		}).
		Create(sessionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save session")
	}

	return nil
}

// Delete removes a session. Missing rows are ignored.
func (repo *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.SessionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete session")
	}

	return nil
}

// DeleteExpired removes sessions whose expiry is not after now.
func (repo *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&model.SessionModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete expired sessions")
	}

	return result.RowsAffected, nil
}

func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	cart := entity.Cart{}
	for key, quantity := range data.Cart {
		cart[key] = quantity
	}

	var flashes []entity.Flash
	for _, flash := range data.Flashes {
		flashes = append(flashes, entity.Flash{Level: entity.FlashLevel(flash.Level), Text: flash.Text})
	}

	return &entity.Session{
		ID:        data.ID,
		UserID:    data.UserID,
		Cart:      cart,
		Flashes:   flashes,
		ExpiresAt: data.ExpiresAt,
	}
}

func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	cart := make(map[string]int, len(data.Cart))
	for key, quantity := range data.Cart {
		cart[key] = quantity
	}

	flashes := make([]model.FlashData, 0, len(data.Flashes))
	for _, flash := range data.Flashes {
		flashes = append(flashes, model.FlashData{Level: string(flash.Level), Text: flash.Text})
	}

	return &model.SessionModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Cart:      cart,
		Flashes:   flashes,
		ExpiresAt: data.ExpiresAt,
	}
}
