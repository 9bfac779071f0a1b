package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/grocerymate-pos/internal/domain/repository"
)

var _ repository.RecordStore = (*RecordStore)(nil)

// RecordStore registro durable clave/valor en Redis (sin expiración).
type RecordStore struct {
	rdb redis.Cmdable
}

func NewRecordStore(rdb redis.Cmdable) *RecordStore {
	return &RecordStore{rdb: rdb}
}

func (s *RecordStore) Get(ctx context.Context, k string) ([]byte, error) {
	v, err := s.rdb.Get(ctx, key(k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", k, err)
	}
	return v, nil
}

func (s *RecordStore) Put(ctx context.Context, k string, value []byte) error {
	if err := s.rdb.Set(ctx, key(k), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", k, err)
	}
	return nil
}

func (s *RecordStore) Delete(ctx context.Context, k string) error {
	if err := s.rdb.Del(ctx, key(k)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", k, err)
	}
	return nil
}
