// Package web is the storefront's HTML delivery.
package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/delivery/middleware"
	webmiddleware "storefront/internal/delivery/web/middleware"
	"storefront/internal/delivery/web/router"
	"storefront/internal/delivery/web/router/handler"
	"storefront/internal/delivery/web/validator"
	"storefront/internal/delivery/web/view"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

const (
	csrfCookieName = "csrftoken"
	csrfHeaderName = "X-CSRFToken"
	csrfFormField  = "csrfmiddlewaretoken"
)

type webServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	Pages        *handler.PageComposer
	RouterParams router.RouterParams
}

// NewEcho builds the configured echo instance with every route registered.
func NewEcho(params ServerParams) (*echo.Echo, error) {
	renderer, err := view.NewRenderer(params.Cfg)
	if err != nil {
		return nil, err
	}

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Server.ReadTimeout = params.Cfg.HTTP.Timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = params.Cfg.HTTP.Timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = params.Cfg.HTTP.Timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = params.Cfg.HTTP.Timeouts.IdleTimeout

	// Routes are registered with a trailing slash; bare paths are redirected.
	echoServer.Pre(echomiddleware.AddTrailingSlashWithConfig(echomiddleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper:      trailingSlashSkipper(params.Cfg.Media.URLPrefix),
	}))

	// Set up middleware in correct order
	// 1. Recover middleware first (to catch panics early)
	echoServer.Use(echomiddleware.Recover())

	// 2. Request ID middleware (must be before logger to include in logs)
	requestIDMiddleware := middleware.NewRequestIDMiddleware(params.Logger)
	echoServer.Use(requestIDMiddleware.Process)

	// 3. Logger middleware
	loggerMiddleware := middleware.NewLoggerMiddleware(params.Logger, params.Cfg)
	echoServer.Use(loggerMiddleware.Handle)

	// 4. Request body size limit
	echoServer.Use(echomiddleware.BodyLimit(params.Cfg.HTTP.MaxRequestBodySize))

	// 5. CSRF protection for every unsafe method
	if params.Cfg.HTTP.CSRF {
		echoServer.Use(echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
			TokenLookup:    "header:" + csrfHeaderName + ",form:" + csrfFormField,
			CookieName:     csrfCookieName,
			CookiePath:     "/",
			CookieHTTPOnly: false,
			CookieSecure:   params.Cfg.Session.Secure,
			CookieSameSite: http.SameSiteLaxMode,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/health"
			},
		}))
	}

	// Set up centralized error handler
	errorMiddleware := webmiddleware.NewErrorMiddleware(params.Pages, params.Logger)
	echoServer.HTTPErrorHandler = errorMiddleware.HandleHTTPError

	echoServer.Validator = validator.New()
	echoServer.Renderer = renderer

	r := router.NewRouter(params.RouterParams)
	r.RegisterRoutes(echoServer)

	return echoServer, nil
}

func NewServer(params ServerParams) (delivery.Delivery, error) {
	echoServer, err := NewEcho(params)
	if err != nil {
		return nil, err
	}

	srv := &webServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: echoServer,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

func (s *webServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting storefront HTTP server", slog.String("host_port", hostPort))
	h2Server := &http2.Server{
		IdleTimeout: s.cfg.HTTP.Timeouts.IdleTimeout,
	}
	if err := s.server.StartH2CServer(hostPort, h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *webServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down storefront HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}

// trailingSlashSkipper leaves assets, media, health and files with an extension untouched.
func trailingSlashSkipper(mediaPrefix string) echomiddleware.Skipper {
	return func(c echo.Context) bool {
		path := c.Request().URL.Path
		if path == "/health" || strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, mediaPrefix) {
			return true
		}

		return strings.HasSuffix(path, ".png")
	}
}
