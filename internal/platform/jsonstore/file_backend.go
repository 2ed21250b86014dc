package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// FileBackend stores a document in a single file on disk.
type FileBackend struct {
	path string
	perm os.FileMode
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend returns a backend for the file at path. The parent directory
// is created on first write.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path, perm: 0o644}
}

// Path returns the backing file path.
func (b *FileBackend) Path() string {
	return b.path
}

// Read returns the file contents. A missing file is reported through exists.
func (b *FileBackend) Read(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Write replaces the file. Data goes to a temporary file in the same directory
// which is synced and renamed over the target, so readers see either the old
// or the new document.
func (b *FileBackend) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := renameio.WriteFile(b.path, data, b.perm); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}
