package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get when no blob exists at the given path.
var ErrNotFound = errors.New("storage: file not found")

// Storage is the document store: opaque blobs keyed by generated paths.
// It never inspects content; size/type policy is enforced before Save.
type Storage interface {
	// Save stores a blob at the given path.
	Save(ctx context.Context, path string, reader io.Reader) error

	// Get retrieves a blob. Returns ErrNotFound when absent.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a blob. Absence is not an error (idempotent delete);
	// any other I/O failure propagates.
	Delete(ctx context.Context, path string) error

	// Exists reports whether a blob exists at the path.
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns the public URL for a stored blob.
	URL(path string) string
}
