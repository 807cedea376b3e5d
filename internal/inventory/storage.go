package inventory

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage defines the interface for receipt image storage
type Storage interface {
	// Save stores an image and returns the path/filename
	Save(filename string, data []byte) (string, error)

	// Get retrieves an image by path
	Get(path string) ([]byte, error)

	// Delete removes an image
	Delete(path string) error
}

// LocalStorage implements the Storage interface on the local filesystem
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates a new LocalStorage instance
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	return &LocalStorage{dir: dir}, nil
}

// Save stores an image in the storage directory
func (l *LocalStorage) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(l.dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return filename, nil
}

// Get retrieves an image from the storage directory
func (l *LocalStorage) Get(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, path))
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Delete removes an image from the storage directory
func (l *LocalStorage) Delete(path string) error {
	if err := os.Remove(filepath.Join(l.dir, path)); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}
