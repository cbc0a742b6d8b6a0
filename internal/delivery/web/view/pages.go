package view

import (
	"storefront/internal/domain/entity"
	"storefront/internal/domain/validation"
)

// Template names, one file per page under templates/.
const (
	PageHome        = "home"
	PageAbout       = "about"
	PageContact     = "contact"
	PageShop        = "shop"
	PageDetail      = "detail"
	PageCart        = "cart"
	PageCheckout    = "checkout"
	PageRegister    = "register"
	PageLogin       = "login"
	PageDashboard   = "dashboard"
	PageAddProduct  = "add_product"
	PageEditProduct = "edit_product"
	PageError       = "error"
)

// Page is what every template receives. Handlers fill Title and Data; the composition
// step fills the rest.
type Page struct {
	Title     string
	Path      string
	User      *entity.User
	Cart      entity.CartSummary // Navigation summary, same aggregate as the cart page.
	Flashes   []entity.Flash
	CSRFToken string
	Data      any
}

// HomeData lists the newest products.
type HomeData struct {
	Products []*entity.Product
}

// ShopData is the shop listing with its category filter.
type ShopData struct {
	Categories       []*entity.Category
	Products         []*entity.Product
	SelectedCategory *entity.Category
}

// DetailData is the product page.
type DetailData struct {
	Product         *entity.Product
	Reviews         []*entity.Review
	Recommendations []*entity.Product
	CanEdit         bool
}

// CartData is the cart page.
type CartData struct {
	Summary entity.CartSummary
}

// DashboardData is the account page.
type DashboardData struct {
	Orders []*entity.Order
}

// RegisterValues are the re-displayed registration inputs. Passwords are never echoed.
type RegisterValues struct {
	Username string
	Email    string
}

// RegisterData is the registration form.
type RegisterData struct {
	Values RegisterValues
	Errors validation.FormErrors
}

// LoginData is the login form.
type LoginData struct {
	Username string
	Next     string
}

// ProductValues are the re-displayed product form inputs.
type ProductValues struct {
	Name        string
	Slug        string
	Description string
	Price       string
	CategoryID  uint
}

// ProductFormData is the add and edit product form.
type ProductFormData struct {
	Product    *entity.Product // Nil on the add page.
	Values     ProductValues
	Categories []*entity.Category
	Errors     validation.FormErrors
}

// ErrorData is the error page.
type ErrorData struct {
	Status  int
	Message string
}
