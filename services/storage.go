package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/utils"
)

// ObjectStorage stores uploaded product images
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// NewObjectStorage builds the storage selected by STORAGE_DRIVER
func NewObjectStorage(ctx context.Context, cfg *config.Config) (ObjectStorage, error) {
	switch cfg.StorageDriver {
	case "s3":
		return NewS3Storage(ctx, cfg)
	case "local", "":
		return NewLocalStorage(cfg.UploadDir), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// LocalStorage keeps images in a directory served by the API itself
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates a storage rooted at dir
func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

// Path resolves key to a file inside the storage directory. Keys with
// path separators are rejected.
func (s *LocalStorage) Path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

func (s *LocalStorage) Put(ctx context.Context, key string, body io.Reader, contentType string) (err error) {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file: %w", closeErr)
		}
	}()

	if _, err := io.Copy(dst, body); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (s *LocalStorage) URL(ctx context.Context, key string) (string, error) {
	if _, err := s.Path(key); err != nil {
		return "", err
	}
	return utils.GetImageURL(key), nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
