package files

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// ErrPreviewReleased is returned when a preview is released twice or was never acquired here
var ErrPreviewReleased = errors.New("preview already released")

// Preview is a displayable handle for a selected file. It stays valid until released.
type Preview struct {
	ID   string
	Path string
	URL  string
}

// TempPreviewStore materializes previews as files in a scratch directory.
type TempPreviewStore struct {
	dir  string
	mu   sync.Mutex
	live map[string]*Preview
}

// NewTempPreviewStore creates a store rooted at dir, or at a fresh temporary
// directory when dir is empty.
func NewTempPreviewStore(dir string) (*TempPreviewStore, error) {
	if dir == "" {
		tmp, err := os.MkdirTemp("", "receipt-previews-")
		if err != nil {
			return nil, fmt.Errorf("failed to create preview directory: %w", err)
		}
		dir = tmp
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create preview directory: %w", err)
	}
	return &TempPreviewStore{dir: dir, live: make(map[string]*Preview)}, nil
}

// Acquire copies the file content into the store and returns its handle.
func (s *TempPreviewStore) Acquire(file File) (*Preview, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name(), err)
	}
	defer src.Close()

	id := uuid.New().String()
	path := filepath.Join(s.dir, id+ExtensionFor(file.ContentType()))

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write preview: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write preview: %w", err)
	}

	preview := &Preview{ID: id, Path: path, URL: "file://" + filepath.ToSlash(path)}

	s.mu.Lock()
	s.live[id] = preview
	s.mu.Unlock()

	return preview, nil
}

// Release frees the preview. Each handle may be released once.
func (s *TempPreviewStore) Release(preview *Preview) error {
	if preview == nil {
		return nil
	}

	s.mu.Lock()
	_, ok := s.live[preview.ID]
	delete(s.live, preview.ID)
	s.mu.Unlock()

	if !ok {
		return ErrPreviewReleased
	}
	if err := os.Remove(preview.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove preview: %w", err)
	}
	return nil
}

// Outstanding returns the number of previews acquired but not yet released
func (s *TempPreviewStore) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Close releases every outstanding preview and removes the directory.
func (s *TempPreviewStore) Close() error {
	s.mu.Lock()
	s.live = make(map[string]*Preview)
	s.mu.Unlock()
	return os.RemoveAll(s.dir)
}
