package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideBase is returned for paths that would resolve outside the storage root
var ErrOutsideBase = errors.New("path escapes storage root")

// localStorage stores uploads on the local filesystem under basePath
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// BasePath returns the storage root directory
func (s *localStorage) BasePath() string {
	return s.basePath
}

// resolve joins a slash separated relative path onto the storage root
func (s *localStorage) resolve(relPath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(relPath, "/")))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", ErrOutsideBase
	}
	return filepath.Join(s.basePath, cleaned), nil
}

// Create creates a new file at relPath and returns a WriteCloser.
// Missing folders are created.
func (s *localStorage) Create(relPath string) (io.WriteCloser, error) {
	path, err := s.resolve(relPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return os.Create(path)
}

// Open opens the file at relPath for reading
func (s *localStorage) Open(relPath string) (io.ReadCloser, error) {
	path, err := s.resolve(relPath)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Delete removes the file at relPath. A file that does not exist is not an error.
func (s *localStorage) Delete(relPath string) error {
	path, err := s.resolve(relPath)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
