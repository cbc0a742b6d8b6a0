package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	reviewRepo   repository.ReviewRepository
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	ReviewRepo   repository.ReviewRepository
	Logger       *slog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		categoryRepo: params.CategoryRepo,
		productRepo:  params.ProductRepo,
		reviewRepo:   params.ReviewRepo,
		logger:       params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Home returns the newest products.
func (srv *catalogService) Home(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListLatest(ctx, usecase.LatestProductsLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list latest products")
	}

	return products, nil
}

// Shop lists products, optionally restricted to one category.
func (srv *catalogService) Shop(ctx context.Context, categorySlug string) (*usecase.ShopPage, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	page := &usecase.ShopPage{Categories: categories}

	var filter entity.ProductFilter
	if categorySlug != "" {
		category, err := srv.categoryRepo.FindBySlug(ctx, categorySlug)
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound.WrapMessage(categorySlug)
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find category")
		}

		page.SelectedCategory = category
		filter.CategoryID = &category.ID
	}

	page.Products, err = srv.productRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return page, nil
}

// Product loads a single product by slug.
func (srv *catalogService) Product(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := srv.productRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound.WrapMessage(slug)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// ProductDetail loads a product, its reviews and same-category recommendations.
func (srv *catalogService) ProductDetail(ctx context.Context, slug string) (*usecase.ProductPage, error) {
	product, err := srv.Product(ctx, slug)
	if err != nil {
		return nil, err
	}

	reviews, err := srv.reviewRepo.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	recommendations, err := srv.productRepo.ListRecommendations(ctx, product.CategoryID, product.ID, usecase.RecommendationsLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recommendations")
	}

	return &usecase.ProductPage{
		Product:         product,
		Reviews:         reviews,
		Recommendations: recommendations,
	}, nil
}

// Categories lists every category.
func (srv *catalogService) Categories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// CreateCategory adds a category.
func (srv *catalogService) CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	slug := strings.TrimSpace(input.Slug)
	if name == "" || slug == "" || !slugPattern.MatchString(slug) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("category needs a name and a valid slug")
	}

	category := &entity.Category{Name: name, Slug: slug}
	if description := strings.TrimSpace(input.Description); description != "" {
		category.Description = &description
	}

	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateCategory) {
			return nil, domainerrors.ErrValidationFailed.WithDetails("Category with this Slug already exists.")
		}

		return nil, errors.Wrap(err, "failed to create category")
	}

	srv.log(ctx).Info("Category created", slog.String("slug", category.Slug))

	return category, nil
}
