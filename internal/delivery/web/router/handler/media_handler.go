package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/delivery/web/response"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// MediaHandlerParams holds dependencies for MediaHandler, injected by Fx.
type MediaHandlerParams struct {
	fx.In

	Images service.ImageStore
	Logger *slog.Logger
}

// MediaHandler streams uploaded product images from the blob bucket.
type MediaHandler struct {
	images service.ImageStore
	logger *slog.Logger
}

// NewMediaHandler is the constructor for MediaHandler
func NewMediaHandler(params MediaHandlerParams) *MediaHandler {
	return &MediaHandler{
		images: params.Images,
		logger: params.Logger,
	}
}

// Serve writes the image stored under the wildcard key.
func (h *MediaHandler) Serve(c echo.Context) error {
	key := strings.TrimPrefix(c.Param("*"), "/")
	if key == "" || strings.Contains(key, "..") {
		return echo.ErrNotFound
	}

	reader, contentType, err := h.images.Open(c.Request().Context(), key)
	if errors.Is(err, service.ErrImageNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "open image")
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=86400")

	return c.Stream(http.StatusOK, contentType, reader)
}

// HealthCheck reports that the server is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
