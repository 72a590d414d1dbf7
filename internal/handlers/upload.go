package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"path"

	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/anonto42/review-portal/backend/internal/storage"
	"github.com/labstack/echo/v4"
)

// uploadedFile is a multipart file that has been stored in the blob store.
type uploadedFile struct {
	URL         string
	Name        string
	ContentType string
}

// uploadFormFile stores the multipart field under folder. It returns
// (nil, nil) when the field is absent and required is false.
func uploadFormFile(ctx context.Context, c echo.Context, store storage.BlobStore, field, folder string, required bool) (*uploadedFile, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) && !required {
			return nil, nil
		}
		return nil, models.NewValidationError(field, "file is required")
	}
	return storeFile(ctx, store, fh, folder)
}

func storeFile(ctx context.Context, store storage.BlobStore, fh *multipart.FileHeader, folder string) (*uploadedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, models.NewValidationError("file", "cannot read upload")
	}
	defer f.Close()

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := store.Upload(ctx, path.Join(folder, fh.Filename), contentType, f)
	if err != nil {
		return nil, err
	}
	return &uploadedFile{URL: url, Name: fh.Filename, ContentType: contentType}, nil
}
