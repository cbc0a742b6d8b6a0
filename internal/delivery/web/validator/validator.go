// Package validator adapts go-playground/validator to echo and to form error maps.
package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"storefront/internal/domain/validation"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	msgRequired = "This field is required."
	msgEmail    = "Enter a valid email address."
	msgSlug     = "Enter a valid “slug” consisting of letters, numbers, underscores or hyphens."
	msgUsername = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	msgMax      = "Ensure this value has at most %s characters (it has %d)."
	msgInvalid  = "Enter a valid value."
)

var (
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

// New creates the validator with the storefront's custom tags registered.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form name so errors line up with template inputs.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i any) error {
	return errors.WithStack(cv.validator.Struct(i))
}

// ToFormErrors converts a validation failure into per-field messages.
// Errors that did not come from the validator are returned as non-field errors.
func ToFormErrors(err error) validation.FormErrors {
	formErrors := validation.FormErrors{}
	if err == nil {
		return formErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		formErrors.Add(validation.NonFieldKey, err.Error())

		return formErrors
	}

	for _, fieldErr := range validationErrors {
		formErrors.Add(fieldErr.Field(), message(fieldErr))
	}

	return formErrors
}

func message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return msgRequired
	case "email":
		return msgEmail
	case "slug":
		return msgSlug
	case "username":
		return msgUsername
	case "max":
		return fmt.Sprintf(msgMax, fieldErr.Param(), len([]rune(fieldErr.Value().(string))))
	default:
		return msgInvalid
	}
}
