package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/google/uuid"
)

// FirebaseStore uploads to a Firebase Storage bucket. Objects are served
// through Firebase download tokens, so the bucket itself can stay private.
type FirebaseStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseStore(bucket *gcs.BucketHandle, bucketName string) *FirebaseStore {
	return &FirebaseStore{bucket: bucket, bucketName: bucketName}
}

func (s *FirebaseStore) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	object := objectName(name)
	token := uuid.NewString()

	w := s.bucket.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("upload %s: %w: %w", name, models.ErrStorage, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w: %w", name, models.ErrStorage, err)
	}

	return downloadURL(s.bucketName, object, token), nil
}

func downloadURL(bucket, object, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(object), token)
}
