package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "Pending"
	OrderStatusShipped OrderStatus = "Shipped"
)

// Order is a placed order. Checkout does not create orders yet; the dashboard lists them.
type Order struct {
	ID        uint
	UserID    uuid.UUID
	Total     decimal.Decimal
	Status    OrderStatus
	ItemCount int
	CreatedAt time.Time
}
