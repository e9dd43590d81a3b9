// Package cache puts a freecache read-through layer in front of a slower
// key/value store.
package cache

import (
	"context"

	"familyfit/internal/domain"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// Store serves Get from memory and writes through to the wrapped store.
type Store struct {
	next  domain.KVStore
	cache *freecache.Cache
}

var _ domain.KVStore = (*Store)(nil)

// New wraps next with a cache of the given size in megabytes.
func New(next domain.KVStore, cacheSizeMegabytes int) *Store {
	megabyte := 1024 * 1024
	return &Store{
		next:  next,
		cache: freecache.NewCache(cacheSizeMegabytes * megabyte),
	}
}

// Get returns the cached value or loads it from the wrapped store. Missing
// keys are not cached.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if v, err := s.cache.Get([]byte(key)); err == nil {
		log.Tracef("cache hit for %s", key)
		return string(v), true, nil
	}

	v, ok, err := s.next.Get(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}
	s.remember(key, v)
	return v, true, nil
}

// Set writes through. The cache only changes after the wrapped store
// accepted the value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.next.Set(ctx, key, value); err != nil {
		return err
	}
	s.remember(key, value)
	return nil
}

// Stats returns hit and miss counts.
func (s *Store) Stats() (hits, misses int64) {
	return s.cache.HitCount(), s.cache.MissCount()
}

func (s *Store) remember(key, value string) {
	if err := s.cache.Set([]byte(key), []byte(value), 0); err != nil {
		// too large for the cache: drop any stale copy
		log.Debugf("cache set %s: %s", key, err)
		s.cache.Del([]byte(key))
	}
}
