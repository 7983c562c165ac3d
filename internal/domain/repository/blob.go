package repository

import "context"

// BlobStore persists opaque JSON documents by key. Get returns
// usecase.ErrNotFound for keys that were never written.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
