package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps uploads on the local filesystem under a base directory
// and serves them from a static route.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if basePath == "" {
		basePath = "./public"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create base directory: %w", err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// BasePath is the directory static file serving mounts.
func (s *LocalStorage) BasePath() string { return s.basePath }

func (s *LocalStorage) Save(ctx context.Context, path string, reader io.Reader) error {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("storage: create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("storage: create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("storage: write file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.basePath, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("storage: open file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(path)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.basePath, filepath.FromSlash(path)))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *LocalStorage) URL(path string) string {
	return s.baseURL + "/" + strings.TrimPrefix(path, "/")
}
