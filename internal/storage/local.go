package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes files under Root and serves them from BaseURL, which the
// router maps onto Root.
type LocalStore struct {
	Root    string
	BaseURL string
}

func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}

	return &LocalStore{Root: root, BaseURL: baseURL}, nil
}

func (l *LocalStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))

	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid key: %q", key)
	}

	return filepath.Join(l.Root, clean), nil
}

func (l *LocalStore) Put(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) (string, error) {
	path, err := l.path(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(path)
		return "", err
	}

	return joinURL(l.BaseURL, key), nil
}

func (l *LocalStore) Delete(ctx context.Context, key string) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

func (l *LocalStore) KeyFor(location string) (string, bool) {
	return trimURL(l.BaseURL, location)
}
