package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID        uint             `gorm:"primaryKey"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	User      *UserModel       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Total     decimal.Decimal  `gorm:"type:numeric(10,2);not null"`
	Status    string           `gorm:"type:varchar(16);not null"`
	Items     []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt time.Time        `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table: one cart line frozen into an order.
type OrderItemModel struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"not null;index"`
	ProductID uint            `gorm:"not null;index"`
	Product   *ProductModel   `gorm:"foreignKey:ProductID"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
