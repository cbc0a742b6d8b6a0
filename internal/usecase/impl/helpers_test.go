package impl

import (
	"io"
	"log/slog"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string {
	return &s
}

func newProduct(id uint, name, slug, price string) *entity.Product {
	return &entity.Product{
		ID:         id,
		Name:       name,
		Slug:       strPtr(slug),
		Price:      decimal.RequireFromString(price),
		CategoryID: 1,
	}
}
