// Package storage keeps uploaded media outside the database. Records only
// hold the path or URL returned by a FileStore.
package storage

import (
	"context"
	"io"
	"strings"
)

type FileStore interface {
	// Put stores body under key and returns the public path or URL to persist.
	Put(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFor maps a value returned by Put back to its key.
	KeyFor(location string) (string, bool)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

func trimURL(base, location string) (string, bool) {
	prefix := strings.TrimRight(base, "/") + "/"

	if !strings.HasPrefix(location, prefix) {
		return "", false
	}

	key := strings.TrimPrefix(location, prefix)

	return key, key != ""
}
