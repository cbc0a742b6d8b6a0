package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/web/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/validation"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const internalErrorMessage = "Internal server error, please try again later"

// ErrorPageRenderer renders the HTML error page for browser callers.
type ErrorPageRenderer interface {
	RenderError(c echo.Context, status int, message string) error
}

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	pages  ErrorPageRenderer
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(pages ErrorPageRenderer, logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		pages:  pages,
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		m.logger.Warn("Error after response was committed",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
		)

		return
	}

	status, code, message, details := m.classify(err, c)

	if response.WantsJSON(c) || m.pages == nil {
		_ = response.Error(c, status, code, message, details)

		return
	}

	if renderErr := m.pages.RenderError(c, status, message); renderErr != nil {
		m.logger.Error("Failed to render error page",
			slog.Int("status", status),
			slog.Any("error", renderErr),
		)
		_ = c.String(status, message)
	}
}

func (m *ErrorMiddleware) classify(err error, c echo.Context) (status int, code, message string, details any) {
	var formErrors validation.FormErrors
	if errors.As(err, &formErrors) {
		return http.StatusBadRequest, domainerrors.ErrValidationFailed.ErrorCode(), domainerrors.ErrValidationFailed.Message(), formErrors
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logUnhandled(err, c)

			return appErr.HTTPCode(), appErr.ErrorCode(), internalErrorMessage, nil
		}

		return appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), nil
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		switch msg := httpErr.Message.(type) {
		case string:
			message = msg
		case error:
			message = msg.Error()
		case nil:
		default:
			message = fmt.Sprint(msg)
		}
		if httpErr.Code >= http.StatusInternalServerError {
			m.logUnhandled(err, c)
			message = internalErrorMessage
		}

		return httpErr.Code, "HTTP_ERROR", message, nil
	}

	m.logUnhandled(err, c)

	return http.StatusInternalServerError, domainerrors.ErrInternalError.ErrorCode(), internalErrorMessage, nil
}

func (m *ErrorMiddleware) logUnhandled(err error, c echo.Context) {
	deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}
