// Package file provides a local-filesystem storage backend.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage stores files under a base directory on the local filesystem.
type Storage struct {
	basePath string
}

// NewStorage creates a Storage rooted at basePath.
func NewStorage(basePath string) *Storage {
	return &Storage{basePath: basePath}
}

// Save writes the reader contents to basePath/subdir/filename, creating the
// subdirectory when missing, and returns the destination path.
func (s *Storage) Save(_ context.Context, subdir, filename string, src io.Reader) (string, error) {
	dir := filepath.Join(s.basePath, subdir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	dstPath := filepath.Join(dir, filename)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file %s: %w", dstPath, err)
	}

	return dstPath, nil
}

// Load opens the stored file at path and returns a reader.
func (s *Storage) Load(_ context.Context, path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Delete removes the stored file at path.
func (s *Storage) Delete(_ context.Context, path string) error {
	return os.Remove(path)
}
