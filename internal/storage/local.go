package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anonto42/review-portal/backend/internal/models"
)

// LocalStore writes uploads below a directory that the HTTP server exposes
// under baseURL.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	object := objectName(name)
	target := filepath.Join(s.dir, filepath.FromSlash(object))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("upload %s: %w: %w", name, models.ErrStorage, err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w: %w", name, models.ErrStorage, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("upload %s: %w: %w", name, models.ErrStorage, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w: %w", name, models.ErrStorage, err)
	}

	return s.baseURL + "/" + object, nil
}
