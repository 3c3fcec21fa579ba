// Package storage provides local filesystem storage for uploaded lesson
// media. References it hands out are opaque path-like strings; nothing else
// in the application touches the disk layout.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// localStorage implements the media Storage interface using the local filesystem
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// generatePath generates the full file path for a stored file of the given kind
func (s *localStorage) generatePath(id, kind string) string {
	return filepath.Join(s.basePath, kind, id)
}

// Create creates a new file and returns a WriteCloser
func (s *localStorage) Create(id, kind string) (io.WriteCloser, error) {
	path := s.generatePath(id, kind)

	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	// Create the file
	return os.Create(path)
}

// Remove deletes the stored file behind a reference previously handed out
// by Reference. References pointing outside the storage root are rejected.
func (s *localStorage) Remove(reference string) error {
	path := filepath.FromSlash(reference)

	rel, err := filepath.Rel(s.basePath, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("reference %q is outside the storage root", reference)
	}

	return os.Remove(path)
}

// Reference returns the opaque reference under which a stored file is
// addressed inside lesson content
func (s *localStorage) Reference(id, kind string) string {
	return filepath.ToSlash(filepath.Join(s.basePath, kind, id))
}
