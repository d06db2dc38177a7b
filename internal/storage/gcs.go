package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCSStorage stores uploads in a Google Cloud Storage bucket.
type GCSStorage struct {
	bucket *gcs.BucketHandle
	name   string
}

// NewGCSStorage creates a client for the given bucket.
func NewGCSStorage(ctx context.Context, bucket string) (*GCSStorage, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStorage{bucket: client.Bucket(bucket), name: bucket}, nil
}

func (s *GCSStorage) Put(ctx context.Context, key, contentType string, content io.Reader) (string, error) {
	writer := s.bucket.Object(key).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, content); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("write gcs object %s: %w", key, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize gcs object %s: %w", key, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.name, key), nil
}
