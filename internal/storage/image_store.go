// Package storage keeps uploaded receipt images on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"receipt-scanner/internal/validation"
)

// URLPrefix is the public path under which stored images are served
const URLPrefix = "/uploads/"

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrFileTooLarge      = errors.New("image exceeds the upload size limit")
	ErrInvalidImage      = errors.New("content is not a valid image")
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageStore writes validated images under dir with random names
type ImageStore struct {
	dir     string
	maxSize int64
}

// NewImageStore creates dir if needed
func NewImageStore(dir string, maxSize int64) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &ImageStore{dir: dir, maxSize: maxSize}, nil
}

// Dir returns the directory images are stored in
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save checks the declared media type, the size and the actual content of
// an upload, then stores it. It returns the public path of the image.
func (s *ImageStore) Save(declaredType string, r io.Reader) (string, error) {
	if !validation.IsAllowedImageType(declaredType) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, declaredType)
	}

	content, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(content)) > s.maxSize {
		return "", ErrFileTooLarge
	}

	// The stored extension follows the detected content, not the header
	detected := mimetype.Detect(content)
	ext, ok := extensions[detected.String()]
	if !ok {
		return "", fmt.Errorf("%w: detected %s", ErrInvalidImage, detected.String())
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return URLPrefix + name, nil
}

// Path resolves a public image path to its file. Only the base name is used,
// so paths cannot escape the store.
func (s *ImageStore) Path(imagePath string) string {
	return filepath.Join(s.dir, path.Base(imagePath))
}

// Delete removes the image behind a public path. A missing file is not an error.
func (s *ImageStore) Delete(imagePath string) error {
	err := os.Remove(s.Path(imagePath))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
