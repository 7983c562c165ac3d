package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/repository"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

type BlobStorage struct {
	db *sqlx.DB
}

func NewBlobStorage(db *sqlx.DB) repository.BlobStore {
	return &BlobStorage{db: db}
}

func (s *BlobStorage) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "pg.BlobStorage.Get"

	var value []byte
	err := sqlx.GetContext(ctx, getQuerier(ctx, s.db), &value, `
		SELECT value
		FROM blobs
		WHERE key = $1
	`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

func (s *BlobStorage) Set(ctx context.Context, key string, value []byte) error {
	const op = "pg.BlobStorage.Set"

	_, err := getQuerier(ctx, s.db).ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
