package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(id uint, name, price string) *Product {
	return &Product{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
}

func TestCart_AddInsertsThenIncrements(t *testing.T) {
	cart := Cart{}

	once := cart.Add("5")
	twice := once.Add("5")

	assert.Equal(t, Cart{"5": 1}, once)
	assert.Equal(t, Cart{"5": 2}, twice)
	assert.Len(t, twice, 1)
	assert.Empty(t, cart, "Add must not mutate its receiver")
}

func TestCart_RemoveDeletesKey(t *testing.T) {
	cart := Cart{"3": 4, "7": 1}

	next := cart.Remove("3")

	assert.Equal(t, Cart{"7": 1}, next)
	assert.False(t, next.Contains("3"))
	assert.Equal(t, Cart{"3": 4, "7": 1}, cart)
}

func TestCart_RemoveAbsentIsNoop(t *testing.T) {
	cart := Cart{"7": 1}

	assert.NotPanics(t, func() {
		assert.Equal(t, Cart{"7": 1}, cart.Remove("42"))
	})
	assert.Equal(t, Cart{}, Cart(nil).Remove("1"))
}

func TestCart_AddThenRemoveRoundTrip(t *testing.T) {
	assert.Equal(t, Cart{}, Cart{}.Add("9").Remove("9"))
}

func TestCart_ProductIDs(t *testing.T) {
	cart := Cart{"12": 1, "3": 2, "abc": 1, "0": 1, "-4": 1}

	assert.Equal(t, []uint{3, 12}, cart.ProductIDs())
	assert.Empty(t, Cart{}.ProductIDs())
}

func TestSummarize_ExactDecimalTotals(t *testing.T) {
	cart := Cart{"3": 2, "7": 1}
	products := []*Product{
		newTestProduct(3, "Shirt", "10.00"),
		newTestProduct(7, "Socks", "5.50"),
	}

	summary := Summarize(cart, products)

	require.Len(t, summary.Items, 2)
	assert.Equal(t, 3, summary.Count)
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("25.50")), "total = %s", summary.Total)
	assert.True(t, summary.Items[0].Subtotal.Equal(decimal.RequireFromString("20.00")))
	assert.Equal(t, 2, summary.Items[0].Quantity)
	assert.Same(t, products[1], summary.Items[1].Product)
}

func TestSummarize_NoFloatingPointDrift(t *testing.T) {
	summary := Summarize(Cart{"1": 3}, []*Product{newTestProduct(1, "Mug", "19.99")})

	assert.Equal(t, "59.97", summary.Total.StringFixed(2))
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("59.97")))
}

func TestSummarize_VanishedProductIsIgnored(t *testing.T) {
	products := []*Product{newTestProduct(3, "Shirt", "10.00")}

	withStale := Summarize(Cart{"3": 2, "99": 5}, products)
	without := Summarize(Cart{"3": 2}, products)

	assert.Equal(t, without.Count, withStale.Count)
	assert.True(t, without.Total.Equal(withStale.Total))
	assert.Equal(t, without.Items, withStale.Items)
}

func TestSummarize_EmptyCart(t *testing.T) {
	summary := Summarize(Cart{}, nil)

	assert.Empty(t, summary.Items)
	assert.Zero(t, summary.Count)
	assert.True(t, summary.Total.IsZero())
}

func TestSummarize_KeepsProductOrder(t *testing.T) {
	products := []*Product{
		newTestProduct(9, "Apron", "1.00"),
		newTestProduct(2, "Boots", "2.00"),
	}

	summary := Summarize(Cart{"2": 1, "9": 1}, products)

	require.Len(t, summary.Items, 2)
	assert.Equal(t, uint(9), summary.Items[0].Product.ID)
	assert.Equal(t, uint(2), summary.Items[1].Product.ID)
}

func TestSummarize_DoesNotMutateCart(t *testing.T) {
	cart := Cart{"3": 2, "99": 1}
	Summarize(cart, []*Product{newTestProduct(3, "Shirt", "10.00")})

	assert.Equal(t, Cart{"3": 2, "99": 1}, cart)
}
