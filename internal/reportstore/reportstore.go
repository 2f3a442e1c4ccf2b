// Package reportstore persists generated report documents in Google
// Cloud Storage.
package reportstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

// StorageService uploads report documents and returns their location.
type StorageService interface {
	UploadReport(ctx context.Context, bucket, month string, data []byte) (string, error)
}

// ObjectKey returns the bucket path for a monthly report PDF.
func ObjectKey(month string) string {
	return fmt.Sprintf("monthly_reports/%s/transaction_report_%s.pdf", month, month)
}

// GCSStore implements StorageService on top of Google Cloud Storage.
// It assumes Application Default Credentials are configured.
type GCSStore struct {
	client *storage.Client
}

// NewGCSStore creates a store backed by a shared storage client.
func NewGCSStore(ctx context.Context) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSStore{client: client}, nil
}

// UploadReport writes the PDF bytes to the bucket and returns the
// resulting gs:// URI.
func (s *GCSStore) UploadReport(ctx context.Context, bucket, month string, data []byte) (string, error) {
	key := ObjectKey(month)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/pdf"

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("copy report to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", bucket, key), nil
}

// Close releases the underlying storage client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

var _ StorageService = (*GCSStore)(nil)
