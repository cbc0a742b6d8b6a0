package impl

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/validation"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type productServiceFixtures struct {
	service      usecase.ProductUsecase
	productRepo  *mockRepo.MockProductRepository
	categoryRepo *mockRepo.MockCategoryRepository
	imageStore   *mockSvc.MockImageStore
}

func createTestProductService(t *testing.T) productServiceFixtures {
	productRepo := mockRepo.NewMockProductRepository(t)
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	imageStore := mockSvc.NewMockImageStore(t)

	return productServiceFixtures{
		service: NewProductService(ProductServiceParams{
			ProductRepo:  productRepo,
			CategoryRepo: categoryRepo,
			ImageStore:   imageStore,
			Config:       &config.Config{Media: &config.MediaConfig{MaxImageSize: 1024}},
			Logger:       discardLogger(),
		}),
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		imageStore:   imageStore,
	}
}

func pngUpload() *usecase.ImageUpload {
	return &usecase.ImageUpload{
		Filename: "shirt.png",
		Size:     int64(len(pngHeader)),
		Content:  bytes.NewReader(pngHeader),
	}
}

func staffUser() *entity.User {
	return &entity.User{ID: uuid.New(), Username: "staff", IsStaff: true, IsActive: true}
}

func validProductInput() usecase.ProductInput {
	return usecase.ProductInput{
		Name:        "Blue Shirt",
		Slug:        "blue-shirt",
		Description: "Cotton",
		Price:       "19.99",
		CategoryID:  1,
		Image:       pngUpload(),
	}
}

func TestProductService_AuthorizeCreate(t *testing.T) {
	fx := createTestProductService(t)

	assert.NoError(t, fx.service.AuthorizeCreate(staffUser()))
	assert.NoError(t, fx.service.AuthorizeCreate(&entity.User{ID: uuid.New(), IsSuperuser: true}))
	assert.True(t, errors.Is(fx.service.AuthorizeCreate(&entity.User{ID: uuid.New()}), domainerrors.ErrForbidden))
	assert.True(t, errors.Is(fx.service.AuthorizeCreate(nil), domainerrors.ErrForbidden))
}

func TestProductService_Create_Success(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()
	user := staffUser()
	category := &entity.Category{ID: 1, Name: "Shirts", Slug: "shirts"}

	fx.productRepo.EXPECT().FindBySlug(ctx, "blue-shirt").Return(nil, repository.ErrProductNotFound)
	fx.categoryRepo.EXPECT().FindByID(ctx, uint(1)).Return(category, nil)
	fx.imageStore.EXPECT().
		Save(ctx, "shirt.png", mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, r io.Reader) (string, error) {
			content, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, pngHeader, content)

			return "products/abc-shirt.png", nil
		})
	fx.productRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		RunAndReturn(func(_ context.Context, product *entity.Product) error {
			product.ID = 10

			return nil
		})

	product, err := fx.service.Create(ctx, user, validProductInput())

	require.NoError(t, err)
	assert.Equal(t, uint(10), product.ID)
	assert.Equal(t, "blue-shirt", product.SlugValue())
	assert.Equal(t, "19.99", product.Price.StringFixed(2))
	assert.Equal(t, "products/abc-shirt.png", product.Image)
	require.NotNil(t, product.CreatedByID)
	assert.Equal(t, user.ID, *product.CreatedByID)
}

func TestProductService_Create_Forbidden(t *testing.T) {
	fx := createTestProductService(t)

	_, err := fx.service.Create(context.Background(), &entity.User{ID: uuid.New()}, validProductInput())

	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestProductService_Create_FormErrors(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	existing := newProduct(2, "Other", "blue-shirt", "1.00")
	fx.productRepo.EXPECT().FindBySlug(ctx, "blue-shirt").Return(existing, nil)
	fx.categoryRepo.EXPECT().FindByID(ctx, uint(9)).Return(nil, repository.ErrCategoryNotFound)

	input := validProductInput()
	input.Name = " "
	input.Price = "abc"
	input.CategoryID = 9
	input.Image = &usecase.ImageUpload{Filename: "notes.txt", Size: 5, Content: strings.NewReader("hello")}

	_, err := fx.service.Create(ctx, staffUser(), input)

	var formErrors validation.FormErrors
	require.True(t, errors.As(err, &formErrors))
	assert.Equal(t, []string{msgRequired}, formErrors.Get("name"))
	assert.Equal(t, []string{msgInvalidNumber}, formErrors.Get("price"))
	assert.Equal(t, []string{domainerrors.ErrSlugTaken.Message()}, formErrors.Get("slug"))
	assert.Equal(t, []string{msgInvalidChoice}, formErrors.Get("category"))
	assert.Equal(t, []string{msgInvalidImage}, formErrors.Get("image"))
}

func TestProductService_Create_ImageRules(t *testing.T) {
	tests := []struct {
		name    string
		image   *usecase.ImageUpload
		wantMsg string
	}{
		{name: "missing", image: nil, wantMsg: msgRequired},
		{
			name:    "too large",
			image:   &usecase.ImageUpload{Filename: "big.png", Size: 4096, Content: bytes.NewReader(pngHeader)},
			wantMsg: "Upload a file no larger than 1.0 KB.",
		},
		{
			name:    "empty file",
			image:   &usecase.ImageUpload{Filename: "empty.png", Size: 0, Content: bytes.NewReader(nil)},
			wantMsg: msgInvalidImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestProductService(t)
			ctx := context.Background()

			fx.productRepo.EXPECT().FindBySlug(ctx, "blue-shirt").Return(nil, repository.ErrProductNotFound)
			fx.categoryRepo.EXPECT().FindByID(ctx, uint(1)).Return(&entity.Category{ID: 1}, nil)

			input := validProductInput()
			input.Image = tt.image

			_, err := fx.service.Create(ctx, staffUser(), input)

			var formErrors validation.FormErrors
			require.True(t, errors.As(err, &formErrors))
			assert.Equal(t, []string{tt.wantMsg}, formErrors.Get("image"))
		})
	}
}

func TestProductService_Create_DuplicateSlugRace(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindBySlug(ctx, "blue-shirt").Return(nil, repository.ErrProductNotFound)
	fx.categoryRepo.EXPECT().FindByID(ctx, uint(1)).Return(&entity.Category{ID: 1}, nil)
	fx.imageStore.EXPECT().Save(ctx, "shirt.png", mock.Anything).Return("products/x.png", nil)
	fx.productRepo.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrDuplicateSlug)

	_, err := fx.service.Create(ctx, staffUser(), validProductInput())

	var formErrors validation.FormErrors
	require.True(t, errors.As(err, &formErrors))
	assert.Equal(t, []string{domainerrors.ErrSlugTaken.Message()}, formErrors.Get("slug"))
}

func TestProductService_Create_BlankSlugStoresNull(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.categoryRepo.EXPECT().FindByID(ctx, uint(1)).Return(&entity.Category{ID: 1}, nil)
	fx.imageStore.EXPECT().Save(ctx, "shirt.png", mock.Anything).Return("products/x.png", nil)
	fx.productRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(product *entity.Product) bool { return product.Slug == nil })).
		Return(nil)

	input := validProductInput()
	input.Slug = "  "

	product, err := fx.service.Create(ctx, staffUser(), input)

	require.NoError(t, err)
	assert.Nil(t, product.Slug)
}

func TestProductService_GetEditable(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	author := &entity.User{ID: uuid.New()}
	product := newProduct(1, "Blue Shirt", "blue-shirt", "19.99")
	product.CreatedByID = &author.ID

	fx.productRepo.EXPECT().FindBySlug(ctx, "blue-shirt").Return(product, nil).Twice()

	got, err := fx.service.GetEditable(ctx, author, "blue-shirt")
	require.NoError(t, err)
	assert.Equal(t, product, got)

	_, err = fx.service.GetEditable(ctx, staffUser(), "blue-shirt")
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestProductService_Update_KeepsImageWhenNoneSent(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	author := &entity.User{ID: uuid.New()}
	product := newProduct(1, "Blue Shirt", "blue-shirt", "19.99")
	product.CreatedByID = &author.ID
	product.Image = "products/old.png"

	fx.productRepo.EXPECT().FindBySlug(ctx, "blue-shirt").Return(product, nil).Twice()
	fx.categoryRepo.EXPECT().FindByID(ctx, uint(1)).Return(&entity.Category{ID: 1}, nil)
	fx.productRepo.EXPECT().Update(ctx, product).Return(nil)

	input := validProductInput()
	input.Name = "Navy Shirt"
	input.Price = "21.50"
	input.Image = nil

	updated, err := fx.service.Update(ctx, author, "blue-shirt", input)

	require.NoError(t, err)
	assert.Equal(t, "Navy Shirt", updated.Name)
	assert.Equal(t, "21.50", updated.Price.StringFixed(2))
	assert.Equal(t, "products/old.png", updated.Image)
}

func TestProductService_Update_NotFound(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindBySlug(ctx, "missing").Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.Update(ctx, staffUser(), "missing", validProductInput())

	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw      string
		want     string
		problems []string
	}{
		{raw: "19.99", want: "19.99"},
		{raw: " 5 ", want: "5"},
		{raw: "0.00", want: "0"},
		{raw: "99999999.99", want: "99999999.99"},
		{raw: "", problems: []string{msgRequired}},
		{raw: "ten", problems: []string{msgInvalidNumber}},
		{raw: "-1", want: "-1", problems: []string{msgNegativePrice}},
		{raw: "1.999", want: "1.999", problems: []string{"Ensure that there are no more than 2 decimal places."}},
		{raw: "12345678901", want: "12345678901", problems: []string{"Ensure that there are no more than 10 digits in total."}},
		{raw: "123456789.5", want: "123456789.5", problems: []string{"Ensure that there are no more than 8 digits before the decimal point."}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			price, problems := parsePrice(tt.raw)

			assert.Equal(t, tt.problems, problems)
			if tt.want != "" {
				assert.Equal(t, tt.want, price.String())
			}
		})
	}
}
