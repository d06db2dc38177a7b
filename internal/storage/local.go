package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes uploads to a directory served statically by the app.
type LocalStorage struct {
	dir        string
	publicPath string
}

// NewLocalStorage creates the upload directory if needed.
func NewLocalStorage(dir, publicPath string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir, publicPath: strings.TrimSuffix(publicPath, "/")}, nil
}

// Dir returns the directory uploads are written to.
func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Put(ctx context.Context, key, contentType string, content io.Reader) (string, error) {
	// Keys are opaque names generated by the caller; reject anything that
	// would escape the upload directory.
	if key != filepath.Base(key) {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	path := filepath.Join(s.dir, key)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return s.publicPath + "/" + key, nil
}
