// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCartService creates a new cart service instance
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Summarize resolves the cart with one batched product lookup.
func (srv *cartService) Summarize(ctx context.Context, cart entity.Cart) (entity.CartSummary, error) {
	ids := cart.ProductIDs()
	if len(ids) == 0 {
		return entity.Summarize(cart, nil), nil
	}

	products, err := srv.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return entity.CartSummary{}, errors.Wrap(err, "failed to load cart products")
	}

	return entity.Summarize(cart, products), nil
}

// AddProduct adds one unit of the product to the session cart.
func (srv *cartService) AddProduct(ctx context.Context, session *entity.Session, slug string) (*usecase.CartUpdate, error) {
	product, err := srv.findProduct(ctx, slug)
	if err != nil {
		return nil, err
	}

	session.Cart = session.Cart.Add(product.CartKey())

	summary, err := srv.Summarize(ctx, session.Cart)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Added product to cart",
		slog.Uint64("productID", uint64(product.ID)),
		slog.Int("quantity", session.Cart[product.CartKey()]),
	)

	return &usecase.CartUpdate{
		Product: product,
		Changed: true,
		Message: fmt.Sprintf("Added %s to cart.", product.Name),
		Summary: summary,
	}, nil
}

// RemoveProduct deletes the product's entry. Removing an absent entry changes nothing.
func (srv *cartService) RemoveProduct(ctx context.Context, session *entity.Session, slug string) (*usecase.CartUpdate, error) {
	product, err := srv.findProduct(ctx, slug)
	if err != nil {
		return nil, err
	}

	update := &usecase.CartUpdate{Product: product}
	if session.Cart.Contains(product.CartKey()) {
		session.Cart = session.Cart.Remove(product.CartKey())
		update.Changed = true
		update.Message = fmt.Sprintf("Removed %s from cart.", product.Name)
	}

	update.Summary, err = srv.Summarize(ctx, session.Cart)
	if err != nil {
		return nil, err
	}

	return update, nil
}

func (srv *cartService) findProduct(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := srv.productRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound.WrapMessage(slug)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}
