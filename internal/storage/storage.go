package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// BlobStore persists uploaded files and returns a publicly reachable URL.
type BlobStore interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// objectName keeps the folder and extension of name and replaces the file
// name with a random one, so two uploads of "logo.png" never collide.
func objectName(name string) string {
	clean := path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))
	dir := strings.TrimPrefix(path.Dir(clean), "/")
	ext := strings.ToLower(path.Ext(clean))

	object := uuid.NewString() + ext
	if dir == "" || dir == "." {
		return object
	}
	return dir + "/" + object
}
