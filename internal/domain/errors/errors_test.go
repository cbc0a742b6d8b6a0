package errors

import (
	"net/http"
	"testing"

	"storefront/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WrapMessageKeepsAppError(t *testing.T) {
	err := ErrProductNotFound.WrapMessage("slug=blue-shirt")

	var appErr AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
	assert.Equal(t, "PRODUCT_NOT_FOUND", appErr.ErrorCode())
	assert.True(t, errors.Is(err, ErrProductNotFound))
	assert.Contains(t, err.Error(), "slug=blue-shirt")
}

func TestBaseError_WithDetails(t *testing.T) {
	err := ErrValidationFailed.WithDetails("price: Enter a number.")

	assert.Equal(t, "price: Enter a number.", err.Details())
	assert.Equal(t, ErrValidationFailed.ErrorCode(), err.ErrorCode())
	assert.Empty(t, ErrValidationFailed.Details())
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabaseExecuteError(cause, "failed to list products")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.Equal(t, "failed to list products", err.Details())
	assert.True(t, errors.Is(err, cause))
}
