package files

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Minimal valid PNG signature followed by an IHDR chunk header
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53, 0xde,
}

var jpegBytes = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01}

func TestDetectBytes(t *testing.T) {
	assert.Equal(t, "image/png", DetectBytes("a.png", pngBytes).ContentType())
	assert.Equal(t, "image/jpeg", DetectBytes("a.jpg", jpegBytes).ContentType())
	assert.Equal(t, "text/plain", DetectBytes("a.txt", []byte("hello")).ContentType())
}

func TestFromBytes(t *testing.T) {
	f := FromBytes("r.webp", "image/webp", []byte("abc"))

	assert.Equal(t, "r.webp", f.Name())
	assert.Equal(t, "image/webp", f.ContentType())
	assert.Equal(t, int64(3), f.Size())

	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
}

func TestOpenLocal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "receipt.png")
	require.NoError(t, os.WriteFile(path, pngBytes, 0o644))

	f, err := OpenLocal(path)
	require.NoError(t, err)

	assert.Equal(t, "receipt.png", f.Name())
	assert.Equal(t, "image/png", f.ContentType())
	assert.Equal(t, int64(len(pngBytes)), f.Size())
	assert.Equal(t, path, f.Path())

	_, err = OpenLocal(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	_, err = OpenLocal(dir)
	assert.Error(t, err)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".png", ExtensionFor("image/png"))
	assert.Equal(t, ".jpg", ExtensionFor("image/jpeg"))
	assert.Equal(t, "", ExtensionFor("application/x-unknown-thing"))
}

// PreviewStoreTestSuite covers acquire/release bookkeeping
type PreviewStoreTestSuite struct {
	suite.Suite
	store *TempPreviewStore
}

func TestPreviewStoreTestSuite(t *testing.T) {
	suite.Run(t, new(PreviewStoreTestSuite))
}

func (s *PreviewStoreTestSuite) SetupTest() {
	store, err := NewTempPreviewStore(s.T().TempDir())
	s.Require().NoError(err)
	s.store = store
}

func (s *PreviewStoreTestSuite) TearDownTest() {
	s.NoError(s.store.Close())
}

// Test that acquire writes a copy and release removes it
func (s *PreviewStoreTestSuite) TestAcquireRelease() {
	preview, err := s.store.Acquire(FromBytes("a.png", "image/png", pngBytes))
	s.Require().NoError(err)

	s.FileExists(preview.Path)
	s.Equal(".png", filepath.Ext(preview.Path))
	s.Contains(preview.URL, "file://")
	s.Equal(1, s.store.Outstanding())

	s.NoError(s.store.Release(preview))
	s.NoFileExists(preview.Path)
	s.Equal(0, s.store.Outstanding())
}

// Test that a handle can only be released once
func (s *PreviewStoreTestSuite) TestReleaseTwice() {
	preview, err := s.store.Acquire(FromBytes("a.jpg", "image/jpeg", jpegBytes))
	s.Require().NoError(err)

	s.NoError(s.store.Release(preview))
	s.ErrorIs(s.store.Release(preview), ErrPreviewReleased)
}

// Test that releasing nil is a no-op
func (s *PreviewStoreTestSuite) TestReleaseNil() {
	s.NoError(s.store.Release(nil))
}

// Test distinct handles per acquisition of the same file
func (s *PreviewStoreTestSuite) TestDistinctHandles() {
	file := FromBytes("a.png", "image/png", pngBytes)
	first, err := s.store.Acquire(file)
	s.Require().NoError(err)
	second, err := s.store.Acquire(file)
	s.Require().NoError(err)

	s.NotEqual(first.ID, second.ID)
	s.Equal(2, s.store.Outstanding())
}
