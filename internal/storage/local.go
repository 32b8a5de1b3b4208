package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage keeps blobs as flat files under a single uploads directory,
// served statically by the HTTP layer.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates the uploads directory if needed.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if basePath == "" {
		basePath = "./uploads"
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// GeneratePath builds a collision-resistant storage name from a timestamp,
// a random suffix and the sanitized original filename. The result contains
// no path separators, so it cannot escape the uploads directory.
func GeneratePath(originalName string) string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// Timestamp alone still avoids traversal; collisions become
		// possible only within the same millisecond.
		return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeName(originalName))
	}
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix), sanitizeName(originalName))
}

// sanitizeName strips directories and anything outside a conservative
// character set from an untrusted filename.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	s := strings.Trim(b.String(), ".")
	if s == "" {
		return "file"
	}
	return s
}

func (s *LocalStorage) fullPath(path string) string {
	return filepath.Join(s.basePath, filepath.Base(path))
}

// Save stores a blob on disk.
func (s *LocalStorage) Save(ctx context.Context, path string, reader io.Reader) error {
	file, err := os.Create(s.fullPath(path))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Get opens a stored blob for reading.
func (s *LocalStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(s.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes a blob, tolerating absence.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	if err := os.Remove(s.fullPath(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists reports whether the blob is on disk.
func (s *LocalStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(s.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// URL returns the public URL under which the static file server exposes
// the blob.
func (s *LocalStorage) URL(path string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, filepath.Base(path))
}
