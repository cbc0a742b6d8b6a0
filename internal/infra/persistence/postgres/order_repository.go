package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// ListByUser returns the user's orders newest first with their item counts.
func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orderModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	itemCount := 0
	for _, item := range data.Items {
		itemCount += item.Quantity
	}

	return &entity.Order{
		ID:        data.ID,
		UserID:    data.UserID,
		Total:     data.Total,
		Status:    entity.OrderStatus(data.Status),
		ItemCount: itemCount,
		CreatedAt: data.CreatedAt,
	}
}
