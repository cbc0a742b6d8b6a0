// Package errors lets callers import one package for both matching and
// stack-annotated wrapping. Matching goes through the standard library;
// wrapping through pkg/errors so logged failures keep their origin.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

func New(text string) error {
	return stderrors.New(text)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Wrap annotates err with message and the caller's stack. It returns nil for a nil err.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records the caller's stack on errors coming from third-party code.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// Errorf builds a new error carrying a stack trace.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}
