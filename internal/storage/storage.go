package storage

import (
	"context"
	"io"
)

// ObjectStorage accepts a binary and returns a stable URL for it. Provider
// images are the only payload; deletion of replaced images is out of scope.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, content io.Reader) (string, error)
}
