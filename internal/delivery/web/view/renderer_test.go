package view

import (
	"bytes"
	"strings"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/validation"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	renderer, err := NewRenderer(&config.Config{Media: &config.MediaConfig{URLPrefix: "/media/"}})
	require.NoError(t, err)

	return renderer
}

func render(t *testing.T, r *Renderer, name string, page Page) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, page, nil))

	return buf.String()
}

// mainContent returns the whitespace-collapsed body of <main>.
func mainContent(t *testing.T, html string) []byte {
	t.Helper()

	const open = `<main class="container">`
	start := strings.Index(html, open)
	end := strings.Index(html, "</main>")
	require.True(t, start >= 0 && end > start, "main element not found")

	return []byte(strings.Join(strings.Fields(html[start+len(open):end]), " "))
}

func product(id uint, name, slug, price string) *entity.Product {
	return &entity.Product{ID: id, Name: name, Slug: &slug, Price: decimal.RequireFromString(price)}
}

func sampleCart() entity.CartSummary {
	cart := entity.Cart{}.Add("1").Add("1").Add("2")

	return entity.Summarize(cart, []*entity.Product{
		product(1, "Blue Shirt", "blue-shirt", "19.99"),
		product(2, "Red Shoe", "red-shoe", "10.00"),
	})
}

func TestRenderer_CartPageGolden(t *testing.T) {
	r := newTestRenderer(t)
	summary := sampleCart()

	html := render(t, r, PageCart, Page{
		Title:     "Cart",
		Cart:      summary,
		Flashes:   []entity.Flash{{Level: entity.FlashSuccess, Text: "Added Blue Shirt to cart."}},
		CSRFToken: "tok",
		Data:      CartData{Summary: summary},
	})

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "cart_page", mainContent(t, html))
}

func TestRenderer_ErrorPageGolden(t *testing.T) {
	r := newTestRenderer(t)

	html := render(t, r, PageError, Page{
		Title: "Not found",
		Data:  ErrorData{Status: 404, Message: "Product not found."},
	})

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "error_page", mainContent(t, html))
}

func TestRenderer_Navigation(t *testing.T) {
	r := newTestRenderer(t)

	t.Run("anonymous with cart", func(t *testing.T) {
		html := render(t, r, PageHome, Page{Cart: sampleCart(), CSRFToken: "tok", Data: HomeData{}})

		assert.Contains(t, html, `<span class="badge bg-danger">3</span>`)
		assert.Contains(t, html, "Total: $49.98")
		assert.Contains(t, html, `data-url="/remove-from-cart/blue-shirt/"`)
		assert.Contains(t, html, `href="/login/"`)
		assert.NotContains(t, html, `action="/logout/"`)
	})

	t.Run("authenticated with empty cart", func(t *testing.T) {
		html := render(t, r, PageHome, Page{
			User: &entity.User{Username: "alice"},
			Cart: entity.Summarize(entity.Cart{}, nil),
			Data: HomeData{},
		})

		assert.Contains(t, html, `<span class="badge bg-danger">0</span>`)
		assert.Contains(t, html, "Your cart is empty.")
		assert.Contains(t, html, "alice")
		assert.Contains(t, html, `action="/logout/"`)
	})
}

func TestRenderer_EscapesUserContent(t *testing.T) {
	r := newTestRenderer(t)
	p := product(7, "<script>alert(1)</script>", "xss", "1.00")

	html := render(t, r, PageDetail, Page{Data: DetailData{Product: p}})

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestRenderer_ErrorFlashUsesDangerClass(t *testing.T) {
	r := newTestRenderer(t)

	html := render(t, r, PageLogin, Page{
		Flashes: []entity.Flash{{Level: entity.FlashError, Text: "Invalid username or password."}},
		Data:    LoginData{},
	})

	assert.Contains(t, html, `<div class="alert alert-danger">Invalid username or password.</div>`)
}

func TestRenderer_RegisterFieldErrors(t *testing.T) {
	r := newTestRenderer(t)
	formErrors := validation.FormErrors{}
	formErrors.Add("username", "A user with that username already exists.")

	html := render(t, r, PageRegister, Page{Data: RegisterData{
		Values: RegisterValues{Username: "alice"},
		Errors: formErrors,
	}})

	assert.Contains(t, html, "A user with that username already exists.")
	assert.Contains(t, html, `value="alice"`)
}

func TestRenderer_UnknownPage(t *testing.T) {
	r := newTestRenderer(t)

	err := r.Render(&bytes.Buffer{}, "missing", Page{}, nil)

	assert.Error(t, err)
}

func TestFuncMap(t *testing.T) {
	funcs := funcMap("/media/")

	assert.Equal(t, "19.90", funcs["money"].(func(decimal.Decimal) string)(decimal.RequireFromString("19.9")))
	assert.Equal(t, "/media/products/a.png", funcs["media"].(func(string) string)("products/a.png"))
	assert.Equal(t, "", funcs["media"].(func(string) string)(""))
	assert.Equal(t, "★★★☆☆", funcs["stars"].(func(int) string)(3))
	assert.Equal(t, "", funcs["productURL"].(func(*entity.Product) string)(&entity.Product{}))
	assert.Equal(t, "/shop/a/", funcs["productURL"].(func(*entity.Product) string)(product(1, "A", "a", "1")))
}
