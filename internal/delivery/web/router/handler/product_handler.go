package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/web/middleware"
	"storefront/internal/delivery/web/view"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/validation"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	shopPath         = "/shop/"
	msgProductAdded  = "Product added successfully."
	titleAddProduct  = "Add product"
	titleEditProduct = "Edit product"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	CatalogUC usecase.CatalogUsecase
	Pages     *PageComposer
	Logger    *slog.Logger
}

// ProductHandler serves the add and edit product forms.
type ProductHandler struct {
	productUC usecase.ProductUsecase
	catalogUC usecase.CatalogUsecase
	pages     *PageComposer
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		catalogUC: params.CatalogUC,
		pages:     params.Pages,
		logger:    params.Logger,
	}
}

// AddForm renders an empty product form to privileged users.
func (h *ProductHandler) AddForm(c echo.Context) error {
	if err := h.productUC.AuthorizeCreate(middleware.CurrentUser(c)); err != nil {
		return err
	}

	return h.renderForm(c, view.PageAddProduct, titleAddProduct, view.ProductFormData{})
}

// Add creates a product authored by the current user.
func (h *ProductHandler) Add(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if err := h.productUC.AuthorizeCreate(user); err != nil {
		return err
	}

	var form ProductForm
	formErrors, err := bindForm(c, &form)
	if err != nil {
		return err
	}
	form.trim()

	data := view.ProductFormData{Values: form.values(), Errors: formErrors}
	if formErrors.HasErrors() {
		return h.renderForm(c, view.PageAddProduct, titleAddProduct, data)
	}

	input, release, err := form.input(c)
	if err != nil {
		return err
	}
	defer release()

	if _, err := h.productUC.Create(c.Request().Context(), user, input); err != nil {
		if errors.As(err, &data.Errors) {
			return h.renderForm(c, view.PageAddProduct, titleAddProduct, data)
		}

		return err
	}

	middleware.CurrentSession(c).AddFlash(entity.FlashSuccess, msgProductAdded)
	if err := middleware.SaveSession(c); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, shopPath)
}

// EditForm renders the product form filled with the product. Anyone but the author is sent
// back to the product page.
func (h *ProductHandler) EditForm(c echo.Context) error {
	slug := c.Param("slug")

	product, err := h.productUC.GetEditable(c.Request().Context(), middleware.CurrentUser(c), slug)
	if errors.Is(err, domainerrors.ErrForbidden) {
		return c.Redirect(http.StatusFound, detailPath(slug))
	}
	if err != nil {
		return err
	}

	return h.renderForm(c, view.PageEditProduct, titleEditProduct, view.ProductFormData{
		Product: product,
		Values: view.ProductValues{
			Name:        product.Name,
			Slug:        product.SlugValue(),
			Description: product.Description,
			Price:       product.Price.StringFixed(2),
			CategoryID:  product.CategoryID,
		},
	})
}

// Edit applies the submitted form. The image is kept when no new file is sent.
func (h *ProductHandler) Edit(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.CurrentUser(c)
	slug := c.Param("slug")

	product, err := h.productUC.GetEditable(ctx, user, slug)
	if errors.Is(err, domainerrors.ErrForbidden) {
		return c.Redirect(http.StatusFound, detailPath(slug))
	}
	if err != nil {
		return err
	}

	var form ProductForm
	formErrors, err := bindForm(c, &form)
	if err != nil {
		return err
	}
	form.trim()

	data := view.ProductFormData{Product: product, Values: form.values(), Errors: formErrors}
	if formErrors.HasErrors() {
		return h.renderForm(c, view.PageEditProduct, titleEditProduct, data)
	}

	input, release, err := form.input(c)
	if err != nil {
		return err
	}
	defer release()

	updated, err := h.productUC.Update(ctx, user, slug, input)
	if errors.Is(err, domainerrors.ErrForbidden) {
		return c.Redirect(http.StatusFound, detailPath(slug))
	}
	if err != nil {
		if errors.As(err, &data.Errors) {
			return h.renderForm(c, view.PageEditProduct, titleEditProduct, data)
		}

		return err
	}

	if updated.SlugValue() == "" {
		return c.Redirect(http.StatusFound, shopPath)
	}

	return c.Redirect(http.StatusFound, detailPath(updated.SlugValue()))
}

func (h *ProductHandler) renderForm(c echo.Context, name, title string, data view.ProductFormData) error {
	categories, err := h.catalogUC.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	data.Categories = categories
	if data.Errors == nil {
		data.Errors = validation.FormErrors{}
	}

	return h.pages.OK(c, name, title, data)
}

func detailPath(slug string) string {
	return shopPath + slug + "/"
}
