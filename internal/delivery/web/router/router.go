// Package router contains routing for the storefront web delivery.
package router

import (
	"storefront/config"
	"storefront/internal/delivery/web/middleware"
	"storefront/internal/delivery/web/router/handler"
	"storefront/internal/delivery/web/view"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CatalogHandler    *handler.CatalogHandler
	CartHandler       *handler.CartHandler
	ReviewHandler     *handler.ReviewHandler
	ProductHandler    *handler.ProductHandler
	AccountHandler    *handler.AccountHandler
	MediaHandler      *handler.MediaHandler
	SessionMiddleware *middleware.SessionMiddleware
	Config            *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	catalogHandler    *handler.CatalogHandler
	cartHandler       *handler.CartHandler
	reviewHandler     *handler.ReviewHandler
	productHandler    *handler.ProductHandler
	accountHandler    *handler.AccountHandler
	mediaHandler      *handler.MediaHandler
	sessionMiddleware *middleware.SessionMiddleware
	config            *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		catalogHandler:    params.CatalogHandler,
		cartHandler:       params.CartHandler,
		reviewHandler:     params.ReviewHandler,
		productHandler:    params.ProductHandler,
		accountHandler:    params.AccountHandler,
		mediaHandler:      params.MediaHandler,
		sessionMiddleware: params.SessionMiddleware,
		config:            params.Config,
	}
}

// RegisterRoutes sets up every storefront route.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Session-less endpoints
	e.GET("/health", handler.HealthCheck)
	e.StaticFS("/static", view.StaticFS())
	e.GET(r.config.Media.URLPrefix+"*", r.mediaHandler.Serve)

	site := e.Group("", r.sessionMiddleware.Load)
	login := middleware.RequireLogin

	// Pages
	site.GET("/", r.catalogHandler.Home)
	site.GET("/about/", r.catalogHandler.About)
	site.GET("/contact/", r.catalogHandler.Contact)

	// Catalog
	shop := site.Group("/shop")
	{
		shop.GET("/", r.catalogHandler.Shop)
		shop.GET("/add/", r.productHandler.AddForm)
		shop.POST("/add/", r.productHandler.Add)
		shop.GET("/:slug/", r.catalogHandler.ProductDetail)
		shop.GET("/:slug/qr.png", r.catalogHandler.ProductQRCode)
		shop.POST("/:slug/review/", r.reviewHandler.Submit)
		shop.GET("/:slug/edit/", r.productHandler.EditForm, login)
		shop.POST("/:slug/edit/", r.productHandler.Edit, login)
	}

	// Cart
	site.POST("/add-to-cart/:slug/", r.cartHandler.AddToCart)
	site.POST("/remove-from-cart/:slug/", r.cartHandler.RemoveFromCart)
	site.GET("/cart/", r.cartHandler.Cart, login)
	site.GET("/checkout/", r.cartHandler.Checkout, login)

	// Accounts
	site.GET("/register/", r.accountHandler.RegisterForm)
	site.POST("/register/", r.accountHandler.Register)
	site.GET("/login/", r.accountHandler.LoginForm)
	site.POST("/login/", r.accountHandler.Login)
	site.POST("/logout/", r.accountHandler.Logout)
	site.GET("/dashboard/", r.accountHandler.Dashboard, login)
}
