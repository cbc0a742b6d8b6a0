package entity

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is an item for sale in the store.
type Product struct {
	ID          uint
	Name        string
	Slug        *string // Nullable; a product without a slug cannot be reached by slug routes.
	Description string
	Price       decimal.Decimal
	Image       string // Key of the stored image blob, e.g. products/ab12cd34-shirt.png.
	CategoryID  uint
	Category    *Category
	CreatedByID *uuid.UUID // Author; nil for products created outside the add-product flow.
}

// SlugValue returns the slug or an empty string when the product has none.
func (p *Product) SlugValue() string {
	if p == nil || p.Slug == nil {
		return ""
	}

	return *p.Slug
}

// CartKey is the key under which the product is stored in a session cart.
func (p *Product) CartKey() string {
	return CartKey(p.ID)
}

// CartKey formats a product id the way session carts key their entries.
func CartKey(productID uint) string {
	return strconv.FormatUint(uint64(productID), 10)
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	CategoryID *uint
}
