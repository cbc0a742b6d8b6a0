// Package response holds the JSON shapes returned by the storefront's AJAX endpoints.
package response

import (
	"net/http"
	"strings"

	deliverycontext "storefront/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestedWith marks requests sent by the bundled script.
const HeaderXRequestedWith = "X-Requested-With"

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"`
}

// MessageError is the flat {"error": "..."} body the review endpoint answers with.
type MessageError struct {
	Error string `json:"error"`
}

// CartResponse is returned to AJAX add-to-cart and remove-from-cart calls.
type CartResponse struct {
	Success   bool   `json:"success"`
	CartCount int    `json:"cart_count"`
	Message   string `json:"message"`
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{
		Data: data,
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details are only exposed for client errors other than auth failures.
	if statusCode >= 500 || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// Message returns {"error": message} with the given status.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, MessageError{Error: message})
}

// IsAJAX reports whether the request was sent by script rather than by page navigation.
func IsAJAX(c echo.Context) bool {
	return c.Request().Header.Get(HeaderXRequestedWith) == "XMLHttpRequest"
}

// WantsJSON reports whether an error for this request should be answered with JSON.
func WantsJSON(c echo.Context) bool {
	if IsAJAX(c) {
		return true
	}

	req := c.Request()
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return true
	}

	accept := req.Header.Get(echo.HeaderAccept)

	return strings.Contains(accept, echo.MIMEApplicationJSON) && !strings.Contains(accept, echo.MIMETextHTML)
}
