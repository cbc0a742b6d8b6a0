package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderRepository provides read access to a user's orders.
type OrderRepository interface {
	// ListByUser returns the user's orders newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
}
