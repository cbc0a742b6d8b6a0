package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"type:varchar(100);not null"`
	Slug        string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description *string `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel mirrors the 'products' table.
// Slug is nullable but unique among non-null values.
type ProductModel struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Slug        *string         `gorm:"type:varchar(50);uniqueIndex"`
	Description string          `gorm:"type:text;not null"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Image       string          `gorm:"type:varchar(255);not null"`
	CategoryID  uint            `gorm:"not null;index"`
	Category    *CategoryModel  `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedByID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedBy   *UserModel      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ReviewModel mirrors the 'reviews' table. Rows are never updated.
type ReviewModel struct {
	ID        uint          `gorm:"primaryKey"`
	UserID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	User      *UserModel    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductID uint          `gorm:"not null;index"`
	Product   *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Rating    int           `gorm:"not null;check:rating_range,rating >= 1 AND rating <= 5"`
	Comment   string        `gorm:"type:text;not null"`
	CreatedAt time.Time     `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
