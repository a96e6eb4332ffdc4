package storage

import (
	"context"
	"io"
)

// Storage persists uploaded files. Paths are relative, forward-slashed keys
// like "img/users/user-abc-123.jpeg".
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns the public URL the stored file is served from.
	URL(path string) string
}
