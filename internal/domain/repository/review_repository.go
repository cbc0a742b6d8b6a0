package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// ReviewRepository defines the interface for review persistence.
type ReviewRepository interface {
	// Create persists a new review and fills its ID and CreatedAt.
	Create(ctx context.Context, review *entity.Review) error

	// ListByProduct returns the reviews of a product, newest first, with the reviewer name loaded.
	ListByProduct(ctx context.Context, productID uint) ([]*entity.Review, error)
}
