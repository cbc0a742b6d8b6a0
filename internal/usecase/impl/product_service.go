package impl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/domain/validation"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const (
	priceMaxDigits     = 10
	priceDecimalPlaces = 2
	sniffLen           = 512
	defaultMaxImage    = 5 << 20
)

const (
	msgRequired       = "This field is required."
	msgInvalidNumber  = "Enter a number."
	msgNegativePrice  = "Ensure this value is greater than or equal to 0."
	msgInvalidChoice  = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidImage   = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	msgInvalidSlug    = "Enter a valid “slug” consisting of letters, numbers, underscores or hyphens."
	msgImageTooLarge  = "Upload a file no larger than %s."
	msgTooManyDigits  = "Ensure that there are no more than %d digits in total."
	msgTooManyPlaces  = "Ensure that there are no more than %d decimal places."
	msgTooManyWhole   = "Ensure that there are no more than %d digits before the decimal point."
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	imageStore   service.ImageStore
	maxImageSize int64
	logger       *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	ImageStore   service.ImageStore
	Config       *config.Config
	Logger       *slog.Logger
}

// NewProductService creates a new product service instance
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	maxImageSize := int64(defaultMaxImage)
	if params.Config != nil && params.Config.Media != nil && params.Config.Media.MaxImageSize > 0 {
		maxImageSize = params.Config.Media.MaxImageSize
	}

	return &productService{
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		imageStore:   params.ImageStore,
		maxImageSize: maxImageSize,
		logger:       params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AuthorizeCreate allows staff and superusers only.
func (srv *productService) AuthorizeCreate(user *entity.User) error {
	if !entity.IsPrivileged(user) {
		return domainerrors.ErrForbidden
	}

	return nil
}

// Create validates the form, stores the image and inserts the product.
func (srv *productService) Create(ctx context.Context, user *entity.User, input usecase.ProductInput) (*entity.Product, error) {
	if err := srv.AuthorizeCreate(user); err != nil {
		return nil, err
	}

	product := &entity.Product{CreatedByID: &user.ID}
	image, err := srv.applyInput(ctx, product, input, true)
	if err != nil {
		return nil, err
	}

	if product.Image, err = srv.imageStore.Save(ctx, image.Filename, image.Content); err != nil {
		return nil, errors.Wrap(err, "failed to store product image")
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, validation.FormErrors{"slug": {domainerrors.ErrSlugTaken.Message()}}
		}

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created",
		slog.Uint64("productID", uint64(product.ID)),
		slog.String("createdBy", user.Username),
	)

	return product, nil
}

// GetEditable loads the product for its author.
func (srv *productService) GetEditable(ctx context.Context, user *entity.User, slug string) (*entity.Product, error) {
	product, err := srv.productRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound.WrapMessage(slug)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	if !entity.CanEditProduct(user, product) {
		return nil, domainerrors.ErrForbidden
	}

	return product, nil
}

// Update validates the form and saves the product. The image is kept unless a new one is sent.
func (srv *productService) Update(ctx context.Context, user *entity.User, slug string, input usecase.ProductInput) (*entity.Product, error) {
	product, err := srv.GetEditable(ctx, user, slug)
	if err != nil {
		return nil, err
	}

	image, err := srv.applyInput(ctx, product, input, false)
	if err != nil {
		return nil, err
	}

	if image != nil {
		if product.Image, err = srv.imageStore.Save(ctx, image.Filename, image.Content); err != nil {
			return nil, errors.Wrap(err, "failed to store product image")
		}
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, validation.FormErrors{"slug": {domainerrors.ErrSlugTaken.Message()}}
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	srv.log(ctx).Info("Product updated", slog.Uint64("productID", uint64(product.ID)))

	return product, nil
}

// applyInput copies the validated form onto product. It returns the sniffed image, if any.
func (srv *productService) applyInput(
	ctx context.Context,
	product *entity.Product,
	input usecase.ProductInput,
	imageRequired bool,
) (*usecase.ImageUpload, error) {
	formErrors := validation.FormErrors{}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		formErrors.Add("name", msgRequired)
	}
	if strings.TrimSpace(input.Description) == "" {
		formErrors.Add("description", msgRequired)
	}

	price, priceErrors := parsePrice(input.Price)
	for _, message := range priceErrors {
		formErrors.Add("price", message)
	}

	var slug *string
	if trimmed := strings.TrimSpace(input.Slug); trimmed != "" {
		if !slugPattern.MatchString(trimmed) {
			formErrors.Add("slug", msgInvalidSlug)
		} else {
			taken, err := srv.slugTaken(ctx, trimmed, product.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				formErrors.Add("slug", domainerrors.ErrSlugTaken.Message())
			}
		}
		slug = &trimmed
	}

	category, err := srv.findCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		formErrors.Add("category", msgInvalidChoice)
	}

	image, imageErrors := srv.sniffImage(input.Image, imageRequired)
	for _, message := range imageErrors {
		formErrors.Add("image", message)
	}

	if formErrors.HasErrors() {
		return nil, formErrors
	}

	product.Name = name
	product.Slug = slug
	product.Description = input.Description
	product.Price = price
	product.CategoryID = category.ID
	product.Category = category

	return image, nil
}

func (srv *productService) slugTaken(ctx context.Context, slug string, productID uint) (bool, error) {
	existing, err := srv.productRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrProductNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to check slug")
	}

	return existing.ID != productID, nil
}

func (srv *productService) findCategory(ctx context.Context, id uint) (*entity.Category, error) {
	if id == 0 {
		return nil, nil
	}

	category, err := srv.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find category")
	}

	return category, nil
}

// sniffImage checks size and content type from the first bytes of the upload.
func (srv *productService) sniffImage(upload *usecase.ImageUpload, required bool) (*usecase.ImageUpload, []string) {
	if upload == nil || upload.Content == nil {
		if required {
			return nil, []string{msgRequired}
		}

		return nil, nil
	}

	if upload.Size > srv.maxImageSize {
		return nil, []string{fmt.Sprintf(msgImageTooLarge, util.FormatBytes(srv.maxImageSize))}
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, []string{msgInvalidImage}
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if n == 0 || !strings.HasPrefix(contentType, "image/") {
		return nil, []string{msgInvalidImage}
	}

	return &usecase.ImageUpload{
		Filename:    upload.Filename,
		Size:        upload.Size,
		ContentType: contentType,
		Content:     io.MultiReader(bytes.NewReader(head), upload.Content),
	}, nil
}

// parsePrice applies the numeric(10,2) rules of the price column.
func parsePrice(raw string) (decimal.Decimal, []string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, []string{msgRequired}
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, []string{msgInvalidNumber}
	}

	var problems []string
	if price.IsNegative() {
		problems = append(problems, msgNegativePrice)
	}

	digits, decimals := countDigits(price)
	wholeDigits := digits - decimals
	switch {
	case digits > priceMaxDigits:
		problems = append(problems, fmt.Sprintf(msgTooManyDigits, priceMaxDigits))
	case decimals > priceDecimalPlaces:
		problems = append(problems, fmt.Sprintf(msgTooManyPlaces, priceDecimalPlaces))
	case wholeDigits > priceMaxDigits-priceDecimalPlaces:
		problems = append(problems, fmt.Sprintf(msgTooManyWhole, priceMaxDigits-priceDecimalPlaces))
	}

	return price, problems
}

// countDigits mirrors how a decimal literal is measured: total significant digits and
// digits after the point, trailing zeros included.
func countDigits(d decimal.Decimal) (digits, decimals int) {
	coefficient := d.Coefficient()
	coefficient.Abs(coefficient)
	length := len(coefficient.String())
	exponent := int(d.Exponent())

	if exponent >= 0 {
		return length + exponent, 0
	}

	decimals = -exponent
	if decimals > length {
		return decimals, decimals
	}

	return length, decimals
}
