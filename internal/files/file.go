package files

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// File is a user-selected upload candidate: a name, a declared media type,
// a byte size and its content.
type File interface {
	Name() string
	ContentType() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// LocalFile is a File backed by a path on disk
type LocalFile struct {
	path        string
	contentType string
	size        int64
}

// OpenLocal stats path and sniffs its media type from the content.
func OpenLocal(path string) (*LocalFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect content type of %s: %w", path, err)
	}

	return &LocalFile{
		path:        path,
		contentType: baseMediaType(mtype.String()),
		size:        info.Size(),
	}, nil
}

func (f *LocalFile) Name() string        { return filepath.Base(f.path) }
func (f *LocalFile) ContentType() string { return f.contentType }
func (f *LocalFile) Size() int64         { return f.size }
func (f *LocalFile) Path() string        { return f.path }

func (f *LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// MemoryFile is a File held in memory
type MemoryFile struct {
	name        string
	contentType string
	data        []byte
}

// FromBytes wraps data with an explicitly declared media type.
func FromBytes(name, contentType string, data []byte) *MemoryFile {
	return &MemoryFile{name: name, contentType: contentType, data: data}
}

// DetectBytes wraps data and sniffs its media type from the content.
func DetectBytes(name string, data []byte) *MemoryFile {
	return FromBytes(name, baseMediaType(mimetype.Detect(data).String()), data)
}

func (f *MemoryFile) Name() string        { return f.name }
func (f *MemoryFile) ContentType() string { return f.contentType }
func (f *MemoryFile) Size() int64         { return int64(len(f.data)) }

func (f *MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// DetectContentType sniffs the media type of data, without parameters.
func DetectContentType(data []byte) string {
	return baseMediaType(mimetype.Detect(data).String())
}

// ExtensionFor returns the canonical extension for a media type, or "" when unknown.
func ExtensionFor(contentType string) string {
	if mtype := mimetype.Lookup(contentType); mtype != nil {
		return mtype.Extension()
	}
	return ""
}

func baseMediaType(contentType string) string {
	base, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(base)
}
