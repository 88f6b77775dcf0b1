package repository

import "context"

// KVStore is the injectable key-value persistence port. Implementations must
// commit durably before returning from Set/Remove. Get returns
// domain.ErrNotFound when the key has no value.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
