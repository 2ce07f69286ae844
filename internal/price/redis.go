package price

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the price map as a single JSON document under one key.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(addr string, db int, key string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) (map[string]map[string]float64, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache: %w", err)
	}

	prices := make(map[string]map[string]float64)
	if err := json.Unmarshal([]byte(data), &prices); err != nil {
		return nil, fmt.Errorf("parse cache: %w", err)
	}
	return prices, nil
}

func (s *RedisStore) Save(ctx context.Context, prices map[string]map[string]float64) error {
	data, err := json.Marshal(prices)
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
