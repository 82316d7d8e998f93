package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Backend keeps the user table in a local file
type Backend struct {
	path string
}

// NewBackend creates a file backend for the given path
func NewBackend(path string) *Backend {
	return &Backend{path: path}
}

// Name returns the backend name for logs
func (b *Backend) Name() string {
	return "file:" + b.path
}

// Read returns the file content; a missing file is not an error
func (b *Backend) Read(ctx context.Context) (string, bool, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Write replaces the file atomically via a temp file in the same directory
func (b *Backend) Write(ctx context.Context, data string) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	return os.Rename(tmp.Name(), b.path)
}
