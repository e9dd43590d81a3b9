// Package redis implements the key/value store port on Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"familyfit/internal/domain"

	"github.com/go-redis/redis/v8"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "familyfit:"

// Store keeps values as plain Redis strings under a key prefix.
type Store struct {
	rdb    *redis.Client
	prefix string
}

var _ domain.KVStore = (*Store)(nil)

// New wraps an existing client.
func New(rdb *redis.Client, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

// Open connects to addr and pings the server. An empty prefix means
// DefaultPrefix.
func Open(addr, password string, db int, prefix string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return New(rdb, prefix), nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

// Set stores value under key without expiry.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, s.prefix+key, value, 0).Err()
}
