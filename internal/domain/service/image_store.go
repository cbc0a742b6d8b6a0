package service

import (
	"context"
	"errors"
	"io"
)

// ErrImageNotFound is returned by Open when no image is stored under the key.
var ErrImageNotFound = errors.New("image not found")

// ImageStore keeps uploaded product images.
type ImageStore interface {
	// Save stores the image and returns its key relative to the media root.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)

	// Open returns a reader for a stored image and its content type.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}
