package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

// pngHeader is enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestBlobImageStore_SaveAndOpen(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := NewBlobImageStore(bucket, 1<<20)

	key, err := store.Save(ctx, "blue shirt.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "products/"))
	assert.True(t, strings.HasSuffix(key, "-blue_shirt.png"))

	again, err := store.Save(ctx, "blue shirt.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, key, again)

	reader, contentType, err := store.Open(ctx, key)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
	assert.Equal(t, "image/png", contentType)
}

func TestBlobImageStore_TooLarge(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := NewBlobImageStore(bucket, 4)

	_, err := store.Save(context.Background(), "big.png", bytes.NewReader(pngHeader))
	assert.True(t, errors.Is(err, domainerrors.ErrImageUploadFailed))
}

func TestBlobImageStore_OpenMissing(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	_, _, err := NewBlobImageStore(bucket, 1<<20).Open(context.Background(), "products/nope.png")
	assert.ErrorIs(t, err, service.ErrImageNotFound)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\cat pic.png`, "cat_pic.png"},
		{"émoji 🙂.gif", "moji_.gif"},
		{"...", "image"},
		{"", "image"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}
