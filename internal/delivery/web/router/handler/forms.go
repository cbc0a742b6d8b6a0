package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/delivery/web/validator"
	"storefront/internal/delivery/web/view"
	"storefront/internal/domain/validation"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductForm is the add and edit product form. The image arrives as a separate file part.
type ProductForm struct {
	Name        string `form:"name" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"omitempty,max=50"`
	Description string `form:"description" validate:"required"`
	Price       string `form:"price" validate:"required"`
	Category    string `form:"category" validate:"required"`
}

// RegisterForm is the account sign-up form.
type RegisterForm struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"required,email"`
	Password1 string `form:"password1" validate:"required"`
	Password2 string `form:"password2" validate:"required"`
}

// LoginForm is the credentials form.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

// bindForm binds and validates a form. Field problems come back as FormErrors; anything
// else is a request failure.
func bindForm(c echo.Context, form any) (validation.FormErrors, error) {
	if err := c.Bind(form); err != nil {
		return nil, err
	}

	if err := c.Validate(form); err != nil {
		formErrors := validator.ToFormErrors(err)
		if _, ok := formErrors[validation.NonFieldKey]; ok {
			return nil, err
		}

		return formErrors, nil
	}

	return nil, nil
}

func (f *ProductForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Slug = strings.TrimSpace(f.Slug)
	f.Description = strings.TrimSpace(f.Description)
	f.Price = strings.TrimSpace(f.Price)
	f.Category = strings.TrimSpace(f.Category)
}

func (f *ProductForm) categoryID() uint {
	id, err := strconv.ParseUint(f.Category, 10, 0)
	if err != nil {
		return 0
	}

	return uint(id)
}

func (f *ProductForm) values() view.ProductValues {
	return view.ProductValues{
		Name:        f.Name,
		Slug:        f.Slug,
		Description: f.Description,
		Price:       f.Price,
		CategoryID:  f.categoryID(),
	}
}

// input builds the use case input. The returned closer releases the uploaded file.
func (f *ProductForm) input(c echo.Context) (usecase.ProductInput, func(), error) {
	input := usecase.ProductInput{
		Name:        f.Name,
		Slug:        f.Slug,
		Description: f.Description,
		Price:       f.Price,
		CategoryID:  f.categoryID(),
	}

	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return input, func() {}, nil
	}
	if err != nil {
		return input, nil, errors.Wrap(err, "read image upload")
	}

	image, err := openUpload(header)
	if err != nil {
		return input, nil, err
	}
	input.Image = image

	return input, func() {
		if closer, ok := image.Content.(multipart.File); ok {
			_ = closer.Close()
		}
	}, nil
}

func openUpload(header *multipart.FileHeader) (*usecase.ImageUpload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open image upload")
	}

	return &usecase.ImageUpload{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Content:     file,
	}, nil
}
