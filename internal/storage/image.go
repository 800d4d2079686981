package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// Bounds for stored images. Larger uploads are scaled down to fit.
const (
	PostWidth    = 1024
	PostHeight   = 768
	AvatarWidth  = 256
	AvatarHeight = 256

	PostPrefix   = "posts"
	AvatarPrefix = "avatars"
)

// ProcessImage decodes any format imaging understands, applies EXIF
// orientation, fits the image inside width x height and re-encodes it as JPEG.
func ProcessImage(r io.Reader, width, height int) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	img = imaging.Fit(img, width, height, imaging.Lanczos)

	var buf bytes.Buffer

	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}

type Uploader struct {
	store  FileStore
	logger *slog.Logger
	newKey func(prefix string) string
}

func NewUploader(store FileStore, logger *slog.Logger) *Uploader {
	return &Uploader{
		store:  store,
		logger: logger,
		newKey: func(prefix string) string {
			return prefix + "/" + uuid.NewString() + ".jpg"
		},
	}
}

func (u *Uploader) SaveImage(ctx context.Context, prefix string, r io.Reader, width, height int) (string, error) {
	data, err := ProcessImage(r, width, height)
	if err != nil {
		return "", err
	}

	key := u.newKey(prefix)

	location, err := u.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "image/jpeg")
	if err != nil {
		return "", err
	}

	u.logger.Debug("Image stored", "key", key, "bytes", len(data))

	return location, nil
}

// Remove deletes a previously stored file. Failures are logged, not returned:
// the owning row is already gone.
func (u *Uploader) Remove(ctx context.Context, location string) {
	key, ok := u.store.KeyFor(location)
	if !ok {
		u.logger.Warn("Not a managed media location", "location", location)
		return
	}

	if err := u.store.Delete(ctx, key); err != nil {
		u.logger.Warn("Failed to remove media", "key", key, "error", err)
	}
}
