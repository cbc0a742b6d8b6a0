// Package storage keeps uploaded product images in a gocloud blob bucket.
package storage

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/util"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	_ "gocloud.dev/blob/s3blob"   // s3:// buckets
	"gocloud.dev/gcerrors"
)

const (
	productImagePrefix = "products/"
	checksumPrefixLen  = 12
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type blobImageStore struct {
	bucket  *blob.Bucket
	maxSize int64
}

// ImageStoreParams holds dependencies for the image store, injected by Fx.
type ImageStoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewImageStore opens the configured bucket and closes it on shutdown.
func NewImageStore(params ImageStoreParams) (service.ImageStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, params.Config.Media.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open media bucket %s", params.Config.Media.BucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing media bucket")

			return errors.WithStack(bucket.Close())
		},
	})

	return NewBlobImageStore(bucket, params.Config.Media.MaxImageSize), nil
}

// NewBlobImageStore wraps an already opened bucket.
func NewBlobImageStore(bucket *blob.Bucket, maxSize int64) service.ImageStore {
	return &blobImageStore{bucket: bucket, maxSize: maxSize}
}

// Save stores the image under products/<sha256 prefix>-<filename>.
// Identical uploads share a key.
func (s *blobImageStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrImageUploadFailed, err.Error())
	}
	if int64(len(data)) > s.maxSize {
		return "", domainerrors.ErrImageUploadFailed.WrapMessage("image exceeds size limit")
	}

	sum, err := util.Checksum(bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrImageUploadFailed, err.Error())
	}

	key := productImagePrefix + sum[:checksumPrefixLen] + "-" + SanitizeFilename(filename)
	opts := &blob.WriterOptions{ContentType: http.DetectContentType(data)}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return "", errors.Wrap(domainerrors.ErrImageUploadFailed, err.Error())
	}

	return key, nil
}

// Open returns a reader for the stored image and its content type.
func (s *blobImageStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", service.ErrImageNotFound
		}

		return nil, "", errors.Wrapf(err, "open image %s", key)
	}

	return reader, reader.ContentType(), nil
}

// SanitizeFilename keeps the base name and replaces anything outside [A-Za-z0-9._-].
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "image"
	}

	return base
}
