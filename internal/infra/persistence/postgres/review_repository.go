package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// reviewRepository implements the repository.ReviewRepository interface.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create persists a new review.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := &model.ReviewModel{
		UserID:    review.UserID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Omit("User", "Product").Create(reviewM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt

	return nil
}

// ListByProduct returns a product's reviews newest first.
func (repo *reviewRepository) ListByProduct(ctx context.Context, productID uint) ([]*entity.Review, error) {
	var reviewModels []*model.ReviewModel

	if err := repo.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&reviewModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list reviews")
	}

	reviews := make([]*entity.Review, 0, len(reviewModels))
	for _, reviewM := range reviewModels {
		reviews = append(reviews, toReviewDomain(reviewM))
	}

	return reviews, nil
}

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	review := &entity.Review{
		ID:        data.ID,
		UserID:    data.UserID,
		ProductID: data.ProductID,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
	}
	if data.User != nil {
		review.Reviewer = data.User.Username
	}

	return review
}
