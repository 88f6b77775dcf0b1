package redis

import (
	"context"
	"errors"
	"fmt"

	"smart-ocr-client/internal/domain"
	"smart-ocr-client/internal/domain/ports/repository"

	"github.com/go-redis/redis/v8"
)

var _ repository.KVStore = (*KVStore)(nil)

// KVStore maps the persistence port onto Redis string keys. Values never
// expire; the job history is meant to survive until an explicit clear.
type KVStore struct {
	client RedisClient
}

func NewKVStore(client RedisClient) *KVStore {
	return &KVStore{client: client}
}

func (s *KVStore) key(k string) string { return "smartocr:" + k }

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key(key))
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return []byte(v), nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.key(key), value, 0)
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key))
}
