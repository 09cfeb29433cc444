package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the token under one key, optionally expiring after TTL.
type RedisStore struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

func NewRedisStore(rdb *redis.Client, key string, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: rdb, Key: key, TTL: ttl}
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	return s.Client.Set(ctx, s.Key, token, s.TTL).Err()
}

func (s *RedisStore) Load(ctx context.Context) (string, error) {
	v, err := s.Client.Get(ctx, s.Key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", ErrNoToken
	}
	return v, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.Client.Del(ctx, s.Key).Err()
}
