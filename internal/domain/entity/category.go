// Package entity contains the core business objects of the storefront,
// each representing a unique, identifiable concept within the domain.
package entity

// Category groups products on the shop page (e.g. Shirts, Shoes).
type Category struct {
	ID          uint    // Surrogate key.
	Name        string  // Display name.
	Slug        string  // Unique URL-safe identifier used by ?category=.
	Description *string // Optional free text.
}
