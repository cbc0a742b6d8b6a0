package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/web/middleware"
	"storefront/internal/delivery/web/response"
	"storefront/internal/delivery/web/view"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const cartPath = "/cart/"

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Pages  *PageComposer
	Logger *slog.Logger
}

// CartHandler manages the session cart.
type CartHandler struct {
	cartUC usecase.CartUsecase
	pages  *PageComposer
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		pages:  params.Pages,
		logger: params.Logger,
	}
}

// AddToCart adds one unit of the product. Script callers get the new cart count as JSON.
func (h *CartHandler) AddToCart(c echo.Context) error {
	session := middleware.CurrentSession(c)

	update, err := h.cartUC.AddProduct(c.Request().Context(), session, c.Param("slug"))
	if err != nil {
		return err
	}

	if !response.IsAJAX(c) {
		session.AddFlash(entity.FlashSuccess, update.Message)
	}
	if err := middleware.SaveSession(c); err != nil {
		return err
	}

	if response.IsAJAX(c) {
		return c.JSON(http.StatusOK, response.CartResponse{
			Success:   true,
			CartCount: update.Summary.Count,
			Message:   update.Message,
		})
	}

	return c.Redirect(http.StatusFound, cartPath)
}

// RemoveFromCart deletes the product's entry.
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	session := middleware.CurrentSession(c)

	update, err := h.cartUC.RemoveProduct(c.Request().Context(), session, c.Param("slug"))
	if err != nil {
		return err
	}

	if update.Changed && !response.IsAJAX(c) {
		session.AddFlash(entity.FlashInfo, update.Message)
	}
	if update.Changed {
		if err := middleware.SaveSession(c); err != nil {
			return err
		}
	}

	if response.IsAJAX(c) {
		return c.JSON(http.StatusOK, response.CartResponse{
			Success:   true,
			CartCount: update.Summary.Count,
			Message:   update.Message,
		})
	}

	return c.Redirect(http.StatusFound, cartPath)
}

// Cart renders the cart page from the same aggregate as the navigation summary.
func (h *CartHandler) Cart(c echo.Context) error {
	summary, err := h.cartUC.Summarize(c.Request().Context(), middleware.CurrentSession(c).Cart)
	if err != nil {
		return errors.Wrap(err, "summarize cart")
	}

	return h.pages.OK(c, view.PageCart, "Cart", view.CartData{Summary: summary})
}

// Checkout renders the checkout placeholder from the navigation summary. No order is placed.
func (h *CartHandler) Checkout(c echo.Context) error {
	return h.pages.OK(c, view.PageCheckout, "Checkout", nil)
}
