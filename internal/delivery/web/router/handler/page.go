// Package handler contains the storefront's HTTP handlers.
package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/web/middleware"
	"storefront/internal/delivery/web/view"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
)

// PageComposerParams holds dependencies for PageComposer, injected by Fx.
type PageComposerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// PageComposer builds the render context shared by every page: the visitor, the cart
// summary, pending flashes and the CSRF token.
type PageComposer struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewPageComposer is the constructor for PageComposer
func NewPageComposer(params PageComposerParams) *PageComposer {
	return &PageComposer{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// Render composes the page and renders the named template with status.
func (p *PageComposer) Render(c echo.Context, status int, name string, page view.Page) error {
	ctx := c.Request().Context()

	page.Path = c.Request().URL.Path
	page.User = middleware.CurrentUser(c)
	if token, ok := c.Get(echomiddleware.DefaultCSRFConfig.ContextKey).(string); ok {
		page.CSRFToken = token
	}

	if session := middleware.CurrentSession(c); session != nil {
		summary, err := p.cartUC.Summarize(ctx, session.Cart)
		if err != nil {
			return errors.Wrap(err, "summarize cart")
		}
		page.Cart = summary

		page.Flashes = session.PopFlashes()
		if len(page.Flashes) > 0 {
			if err := middleware.SaveSession(c); err != nil {
				return err
			}
		}
	}

	return errors.WithStack(c.Render(status, name, page))
}

// OK renders the named template with 200.
func (p *PageComposer) OK(c echo.Context, name, title string, data any) error {
	return p.Render(c, http.StatusOK, name, view.Page{Title: title, Data: data})
}

// RenderError implements middleware.ErrorPageRenderer.
func (p *PageComposer) RenderError(c echo.Context, status int, message string) error {
	return p.Render(c, status, view.PageError, view.Page{
		Title: http.StatusText(status),
		Data:  view.ErrorData{Status: status, Message: message},
	})
}
