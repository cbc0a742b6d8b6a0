package entity

import (
	"maps"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
)

// Cart is the session-scoped mapping from product id (decimal string) to quantity.
// A present key always has a quantity of at least one.
type Cart map[string]int

// Add returns a copy of the cart with one more unit of productID.
func (c Cart) Add(productID string) Cart {
	next := c.clone()
	next[productID]++

	return next
}

// Remove returns a copy of the cart without productID. Removing an absent key is a no-op.
func (c Cart) Remove(productID string) Cart {
	next := c.clone()
	delete(next, productID)

	return next
}

// Contains reports whether productID has an entry.
func (c Cart) Contains(productID string) bool {
	_, ok := c[productID]

	return ok
}

// ProductIDs returns the numeric ids of all keys in ascending order.
// Keys that are not product ids cannot match a product and are skipped.
func (c Cart) ProductIDs() []uint {
	ids := make([]uint, 0, len(c))
	for key := range c {
		id, err := strconv.ParseUint(key, 10, 0)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint(id))
	}
	slices.Sort(ids)

	return ids
}

func (c Cart) clone() Cart {
	next := make(Cart, len(c)+1)
	maps.Copy(next, c)

	return next
}

// LineItem is one resolved cart entry.
type LineItem struct {
	Product  *Product
	Quantity int
	Subtotal decimal.Decimal
}

// CartSummary is the display-ready view of a cart.
type CartSummary struct {
	Items []LineItem
	Count int             // Sum of quantities, not the number of lines.
	Total decimal.Decimal // Exact sum of subtotals.
}

// Summarize resolves cart against products, which must be the result of one lookup of
// cart.ProductIDs(). Line items follow the order of products. Cart keys with no matching
// product do not contribute to the summary. The cart is not modified.
func Summarize(cart Cart, products []*Product) CartSummary {
	summary := CartSummary{
		Items: make([]LineItem, 0, len(products)),
		Total: decimal.Zero,
	}

	for _, product := range products {
		if product == nil {
			continue
		}
		quantity, ok := cart[product.CartKey()]
		if !ok || quantity <= 0 {
			continue
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
		summary.Items = append(summary.Items, LineItem{
			Product:  product,
			Quantity: quantity,
			Subtotal: subtotal,
		})
		summary.Count += quantity
		summary.Total = summary.Total.Add(subtotal)
	}

	return summary
}
