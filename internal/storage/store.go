package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the requested object key does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectStore is the durable blob storage the pipeline reads datasets
// from and writes model artifacts to. Implementations must be safe for
// concurrent use.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	List(ctx context.Context, prefix string) ([]string, error)
	Remove(ctx context.Context, key string) error
}
