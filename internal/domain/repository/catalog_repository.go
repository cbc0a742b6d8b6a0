// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateSlug is returned when a product slug is already taken.
	ErrDuplicateSlug = errors.New("slug already exists")
	// ErrDuplicateCategory is returned when a category name or slug is already taken.
	ErrDuplicateCategory = errors.New("category already exists")
)

// CategoryRepository defines the interface for category-related database operations.
type CategoryRepository interface {
	// List returns every category ordered by name.
	List(ctx context.Context) ([]*entity.Category, error)

	// FindBySlug retrieves a category by its URL slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Category, error)

	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error
}

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	// FindBySlug retrieves a product with its category.
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// FindByIDs loads the given products in one query, ordered by name then id.
	// Unknown ids are silently absent from the result.
	FindByIDs(ctx context.Context, ids []uint) ([]*entity.Product, error)

	// ListLatest returns the newest products first.
	ListLatest(ctx context.Context, limit int) ([]*entity.Product, error)

	// List returns products matching the filter ordered by name.
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)

	// ListRecommendations returns up to limit other products of the same category.
	ListRecommendations(ctx context.Context, categoryID, excludeID uint, limit int) ([]*entity.Product, error)

	// Create persists a new product and fills its ID.
	Create(ctx context.Context, product *entity.Product) error

	// Update saves the editable fields of an existing product.
	Update(ctx context.Context, product *entity.Product) error
}
