package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"memberdesk/internal/errors"
	"memberdesk/internal/model"
)

// RedisStore keeps the collection under a single Redis key. Unlike the
// session cache this client does not swallow write errors: losing a member
// write silently is not acceptable.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store writing to key.
func NewRedisStore(addr, password string, db int, key string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: client, key: key}
}

// GetAll reads the collection key. A missing key or connectivity failure
// degrades to an empty collection.
func (s *RedisStore) GetAll(ctx context.Context) ([]model.User, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return []model.User{}, nil
	}
	if err != nil {
		return []model.User{}, nil
	}
	return Decode(data), nil
}

// ReplaceAll writes the full collection under the key with no expiry.
func (s *RedisStore) ReplaceAll(ctx context.Context, users []model.User) error {
	data, err := Encode(users)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStorageUnavailable, err)
	}
	return nil
}
