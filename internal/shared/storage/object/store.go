package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no object exists at a storage key.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for saving, retrieving and removing binary objects.
type ObjectStore interface {
	Save(ctx context.Context, storageKey string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}
