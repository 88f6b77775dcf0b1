package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"smart-ocr-client/internal/domain"
	"smart-ocr-client/internal/domain/ports/repository"
)

var _ repository.KVStore = (*KVStore)(nil)

// KVStore keeps client state in a single key/value table, one row per key.
type KVStore struct {
	pool *pgxpool.Pool
}

// NewKVStore ensures the backing table exists and returns the store.
func NewKVStore(ctx context.Context, pool *pgxpool.Pool) (*KVStore, error) {
	const ddl = `
CREATE TABLE IF NOT EXISTS client_state (
  key        TEXT PRIMARY KEY,
  value      BYTEA NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("ensure client_state table: %w", err)
	}
	return &KVStore{pool: pool}, nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM client_state WHERE key = $1;`
	var value []byte
	err := s.pool.QueryRow(ctx, q, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	const q = `
INSERT INTO client_state (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = now();`
	_, err := s.pool.Exec(ctx, q, key, value)
	return err
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	const q = `DELETE FROM client_state WHERE key = $1;`
	_, err := s.pool.Exec(ctx, q, key)
	return err
}
