package usecase

import (
	"context"
	"io"

	"storefront/internal/domain/entity"
)

// ImageUpload is an uploaded file as received from the form.
type ImageUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.Reader
}

// ProductInput is the product form after structural validation.
type ProductInput struct {
	Name        string
	Slug        string
	Description string
	Price       string
	CategoryID  uint
	Image       *ImageUpload // Nil when no file was sent.
}

// ProductUsecase defines product management by privileged users and authors.
type ProductUsecase interface {
	// AuthorizeCreate returns ErrForbidden unless the user may add products.
	AuthorizeCreate(user *entity.User) error

	// Create adds a product authored by user. Invalid input yields validation.FormErrors.
	Create(ctx context.Context, user *entity.User, input ProductInput) (*entity.Product, error)

	// GetEditable loads the product when user is its author, else ErrForbidden.
	GetEditable(ctx context.Context, user *entity.User, slug string) (*entity.Product, error)

	// Update edits a product authored by user. Invalid input yields validation.FormErrors.
	Update(ctx context.Context, user *entity.User, slug string, input ProductInput) (*entity.Product, error)
}
