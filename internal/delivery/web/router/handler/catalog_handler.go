package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/web/middleware"
	"storefront/internal/delivery/web/view"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	QRCode    service.QRCodeService
	Pages     *PageComposer
	Logger    *slog.Logger
}

// CatalogHandler serves the public pages and the product catalog.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	qrCode    service.QRCodeService
	pages     *PageComposer
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		qrCode:    params.QRCode,
		pages:     params.Pages,
		logger:    params.Logger,
	}
}

// Home lists the newest products.
func (h *CatalogHandler) Home(c echo.Context) error {
	products, err := h.catalogUC.Home(c.Request().Context())
	if err != nil {
		return err
	}

	return h.pages.OK(c, view.PageHome, "", view.HomeData{Products: products})
}

// About renders the static about page.
func (h *CatalogHandler) About(c echo.Context) error {
	return h.pages.OK(c, view.PageAbout, "About", nil)
}

// Contact renders the static contact page.
func (h *CatalogHandler) Contact(c echo.Context) error {
	return h.pages.OK(c, view.PageContact, "Contact", nil)
}

// Shop lists products, optionally filtered by ?category=<slug>.
func (h *CatalogHandler) Shop(c echo.Context) error {
	page, err := h.catalogUC.Shop(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}

	return h.pages.OK(c, view.PageShop, "Shop", view.ShopData{
		Categories:       page.Categories,
		Products:         page.Products,
		SelectedCategory: page.SelectedCategory,
	})
}

// ProductDetail renders a product with its reviews and recommendations.
func (h *CatalogHandler) ProductDetail(c echo.Context) error {
	page, err := h.catalogUC.ProductDetail(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	return h.pages.OK(c, view.PageDetail, page.Product.Name, view.DetailData{
		Product:         page.Product,
		Reviews:         page.Reviews,
		Recommendations: page.Recommendations,
		CanEdit:         entity.CanEditProduct(middleware.CurrentUser(c), page.Product),
	})
}

// ProductQRCode returns a PNG share code pointing at the product page.
func (h *CatalogHandler) ProductQRCode(c echo.Context) error {
	product, err := h.catalogUC.Product(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	origin := c.Scheme() + "://" + c.Request().Host
	png, err := h.qrCode.GenerateProductQR(origin, "/shop/"+product.SlugValue()+"/")
	if err != nil {
		return errors.Wrap(err, "generate product qr code")
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=3600")

	return c.Blob(http.StatusOK, "image/png", png)
}
