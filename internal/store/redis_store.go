package store

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/shoply/cartd/internal/cart"
	carterrors "github.com/shoply/cartd/internal/errors"
	"github.com/shoply/cartd/pkg/config"
)

// redisStore implements CartStore on top of Redis. The cart is stored as a
// JSON array under a single fixed key.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection before
// returning the store.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (CartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: cfg.Timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &redisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps an existing client. Used by tests.
func NewRedisStoreWithClient(client *redis.Client) CartStore {
	return &redisStore{client: client}
}

func (s *redisStore) Load(ctx context.Context) ([]cart.Item, error) {
	data, err := s.client.Get(ctx, cartKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET %s: %v: %w", cartKey, err, carterrors.ErrCartLoad)
	}
	return decodeItems(data)
}

func (s *redisStore) Save(ctx context.Context, items []cart.Item) error {
	data, err := encodeItems(items)
	if err != nil {
		return err
	}
	// No expiry: the cart survives until the next overwrite.
	if err := s.client.Set(ctx, cartKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %v: %w", cartKey, err, carterrors.ErrCartSave)
	}
	return nil
}
