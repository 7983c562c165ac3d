// Package memory keeps blobs in process memory. It backs local runs without
// DATABASE_URL and unit tests.
package memory

import (
	"context"
	"sync"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/repository"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

type BlobStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewBlobStorage() *BlobStorage {
	return &BlobStorage{blobs: make(map[string][]byte)}
}

var _ repository.BlobStore = (*BlobStorage)(nil)

func (s *BlobStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.blobs[key]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *BlobStorage) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = append([]byte(nil), value...)
	return nil
}

// TxManager runs fn directly; the memory store has no transactions.
type TxManager struct{}

func NewTxManager() repository.TxManager {
	return TxManager{}
}

func (TxManager) Do(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
