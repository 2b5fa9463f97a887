// Package redis keeps the token denylist in Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"bookloan/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Store is a Redis-backed cache
type Store struct {
	client *redis.Client
}

// NewStoreFromURL connects to the Redis server at redisURL
func NewStoreFromURL(redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.With("redis").WithField("addr", opts.Addr).Info("redis connected")
	return NewStoreFromClient(client), nil
}

// NewStoreFromClient wraps an existing client
func NewStoreFromClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Close closes the client
func (s *Store) Close() error {
	return s.client.Close()
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
