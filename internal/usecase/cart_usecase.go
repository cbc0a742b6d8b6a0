// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartUpdate describes the outcome of an add or remove.
type CartUpdate struct {
	Product *entity.Product
	Changed bool   // False when removing an entry that was not in the cart.
	Message string // Flash text, empty when nothing changed.
	Summary entity.CartSummary
}

// CartUsecase owns the session cart. Every caller sees the same aggregate.
type CartUsecase interface {
	// Summarize resolves the cart with a single catalog lookup. It never modifies the cart.
	Summarize(ctx context.Context, cart entity.Cart) (entity.CartSummary, error)

	// AddProduct adds one unit of the product to the session cart in memory.
	AddProduct(ctx context.Context, session *entity.Session, slug string) (*CartUpdate, error)

	// RemoveProduct deletes the product's entry from the session cart in memory.
	RemoveProduct(ctx context.Context, session *entity.Session, slug string) (*CartUpdate, error)
}
