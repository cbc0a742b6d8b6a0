package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

const (
	// LatestProductsLimit is the number of teasers on the home page.
	LatestProductsLimit = 3
	// RecommendationsLimit caps same-category suggestions on the detail page.
	RecommendationsLimit = 4
)

// ShopPage is the data of the shop listing.
type ShopPage struct {
	Categories       []*entity.Category
	Products         []*entity.Product
	SelectedCategory *entity.Category
}

// ProductPage is the data of the product detail page.
type ProductPage struct {
	Product         *entity.Product
	Reviews         []*entity.Review
	Recommendations []*entity.Product
}

// CreateCategoryInput defines the data required to add a category.
type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description string
}

// CatalogUsecase defines read access to categories and products.
type CatalogUsecase interface {
	// Home returns the newest products.
	Home(ctx context.Context) ([]*entity.Product, error)

	// Shop lists products, filtered by category when categorySlug is not empty.
	Shop(ctx context.Context, categorySlug string) (*ShopPage, error)

	// Product loads a single product by slug.
	Product(ctx context.Context, slug string) (*entity.Product, error)

	// ProductDetail loads a product with its reviews and recommendations.
	ProductDetail(ctx context.Context, slug string) (*ProductPage, error)

	// Categories lists every category ordered by name.
	Categories(ctx context.Context) ([]*entity.Category, error)

	// CreateCategory adds a category.
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*entity.Category, error)
}
