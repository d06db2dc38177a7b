package storage

import (
	"context"
	"fmt"

	"github.com/spec-kit/provider-directory/internal/config"
)

// NewFromConfig creates the ObjectStorage implementation selected by
// STORAGE_PROVIDER. This is the only place that knows concrete adapters.
func NewFromConfig(ctx context.Context, cfg config.StorageConfig) (ObjectStorage, error) {
	switch cfg.Provider {
	case config.StorageProviderLocal:
		return NewLocalStorage(cfg.Local.Dir, cfg.Local.PublicPath)
	case config.StorageProviderGCS:
		return NewGCSStorage(ctx, cfg.GCS.Bucket)
	case config.StorageProviderS3:
		return NewS3Storage(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}
