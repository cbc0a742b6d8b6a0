package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/delivery/web/middleware"
	"storefront/internal/delivery/web/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	Logger   *slog.Logger
}

// ReviewHandler accepts review submissions from the product page script.
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
	logger   *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: params.ReviewUC,
		logger:   params.Logger,
	}
}

// rawReview holds the submitted values before type checks.
type rawReview struct {
	rating  any
	comment string
}

// Submit stores a review. The body is read as JSON and, when that fails, as form fields.
func (h *ReviewHandler) Submit(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Message(c, http.StatusForbidden, domainerrors.ErrAuthenticationRequired.Message())
	}

	raw, err := readReview(c)
	if err != nil {
		return err
	}

	input, err := parseReview(raw)
	if err != nil {
		return h.fail(c, err)
	}

	output, err := h.reviewUC.Submit(c.Request().Context(), user, c.Param("slug"), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, output)
}

func (h *ReviewHandler) fail(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
		return response.Message(c, appErr.HTTPCode(), appErr.Message())
	}

	return err
}

func readReview(c echo.Context) (rawReview, error) {
	req := c.Request()
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return rawReview{}, errors.Wrap(err, "read review body")
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	var payload map[string]any
	if json.Unmarshal(body, &payload) == nil && payload != nil {
		comment, _ := payload["comment"].(string)

		return rawReview{rating: payload["rating"], comment: comment}, nil
	}

	var rating any
	if value := c.FormValue("rating"); value != "" {
		rating = value
	}

	return rawReview{rating: rating, comment: c.FormValue("comment")}, nil
}

func parseReview(raw rawReview) (usecase.ReviewInput, error) {
	if isBlankRating(raw.rating) || strings.TrimSpace(raw.comment) == "" {
		return usecase.ReviewInput{}, domainerrors.ErrReviewIncomplete
	}

	var rating int
	switch value := raw.rating.(type) {
	case float64:
		if value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
			return usecase.ReviewInput{}, domainerrors.ErrInvalidRating
		}
		rating = int(value)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return usecase.ReviewInput{}, domainerrors.ErrInvalidRating
		}
		rating = parsed
	default:
		return usecase.ReviewInput{}, domainerrors.ErrInvalidRating
	}

	return usecase.ReviewInput{Rating: rating, Comment: raw.comment}, nil
}

// isBlankRating treats absent, null, empty and zero ratings as missing.
func isBlankRating(rating any) bool {
	switch value := rating.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	case float64:
		return value == 0
	case bool:
		return !value
	default:
		return false
	}
}
