package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindBySlug retrieves a product with its category.
func (repo *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ?", slug).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find product by slug")
	}

	return toProductDomain(&productM), nil
}

// FindByIDs loads every requested product with a single IN query.
func (repo *productRepository) FindByIDs(ctx context.Context, ids []uint) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}

	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("name ASC").
		Order("id ASC").
		Find(&productModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find products by IDs")
	}

	return toProductsDomain(productModels), nil
}

// ListLatest returns the newest products first.
func (repo *productRepository) ListLatest(ctx context.Context, limit int) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&productModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list latest products")
	}

	return toProductsDomain(productModels), nil
}

// List returns products matching the filter ordered by name.
func (repo *productRepository) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	query := repo.db.WithContext(ctx).Preload("Category")
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	if err := query.
		Order("name ASC").
		Order("id ASC").
		Find(&productModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list products")
	}

	return toProductsDomain(productModels), nil
}

// ListRecommendations returns other products of the same category ordered by name.
func (repo *productRepository) ListRecommendations(ctx context.Context, categoryID, excludeID uint, limit int) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("category_id = ? AND id <> ?", categoryID, excludeID).
		Order("name ASC").
		Order("id ASC").
		Limit(limit).
		Find(&productModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list recommendations")
	}

	return toProductsDomain(productModels), nil
}

// Create persists a new product and fills its ID.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Omit("Category", "CreatedBy").Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSlug
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID

	return nil
}

// Update saves the editable fields. The author is never changed.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Select("name", "slug", "description", "price", "image", "category_id").
		Updates(map[string]any{
			"name":        product.Name,
			"slug":        product.Slug,
			"description": product.Description,
			"price":       product.Price,
			"image":       product.Image,
			"category_id": product.CategoryID,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateSlug
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func toProductsDomain(productModels []*model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products
}

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Description: data.Description,
		Price:       data.Price,
		Image:       data.Image,
		CategoryID:  data.CategoryID,
		Category:    toCategoryDomain(data.Category),
		CreatedByID: data.CreatedByID,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Description: data.Description,
		Price:       data.Price,
		Image:       data.Image,
		CategoryID:  data.CategoryID,
		CreatedByID: data.CreatedByID,
	}
}
