package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisSlotStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisSlotStore keeps slots as plain string keys that expire ttl after the last write.
func NewRedisSlotStore(client redis.Cmdable, ttl time.Duration) SlotStore {
	return &redisSlotStore{client: client, ttl: ttl}
}

func (s *redisSlotStore) Get(ctx context.Context, key string) ([]byte, error) {

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}

	return data, nil
}

func (s *redisSlotStore) Put(ctx context.Context, key string, value []byte) error {

	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}

	return nil
}

func (s *redisSlotStore) Delete(ctx context.Context, key string) error {

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}

	return nil
}
