package persistence

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"github.com/spec-kit/provider-directory/internal/config"
)

// Firestore wraps the document store client.
type Firestore struct {
	Client *firestore.Client
}

// NewFirestore creates a Firestore client for the configured project.
func NewFirestore(ctx context.Context, cfg config.FirestoreConfig, logger *zap.Logger) (*Firestore, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("FIRESTORE_PROJECT_ID not provided")
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	logger.Info("connected to firestore", zap.String("project", cfg.ProjectID))
	return &Firestore{Client: client}, nil
}

// Close releases the client.
func (f *Firestore) Close() {
	if f != nil && f.Client != nil {
		_ = f.Client.Close()
	}
}
