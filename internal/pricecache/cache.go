// Package pricecache is the only shared mutable state in the pipeline: a
// TTL key/value store with last-writer-wins semantics. Concurrent misses on
// the same key are tolerated - both producers run and the later write wins,
// which is safe because every cached computation is idempotent.
package pricecache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

type Store struct {
	mu    sync.RWMutex
	items map[string]entry

	// Now is swappable so tests can pin the clock.
	Now func() time.Time
}

func New() *Store {
	return &Store{
		items: map[string]entry{},
		Now:   time.Now,
	}
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || s.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	s.items[key] = entry{value: value, expiresAt: s.Now().Add(ttl)}
	s.mu.Unlock()
}

// Sweep drops expired entries. Called periodically by the scheduler; the
// store stays correct without it, it just holds memory longer.
func (s *Store) Sweep() int {
	now := s.Now()
	removed := 0
	s.mu.Lock()
	for k, e := range s.items {
		if now.After(e.expiresAt) {
			delete(s.items, k)
			removed++
		}
	}
	s.mu.Unlock()
	return removed
}

// Key builds a namespaced cache key: function name plus the normalized
// argument set, so different symbols or periods can never collide.
func Key(fn string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, fn)
	for _, a := range args {
		parts = append(parts, strings.ToUpper(strings.TrimSpace(a)))
	}
	return strings.Join(parts, ":")
}

// WithCache is the cache-aside helper: return the cached value for key, or
// run produce, store its result under ttl, and return it. Errors are never
// cached.
func WithCache[T any](s *Store, key string, ttl time.Duration, produce func() (T, error)) (T, error) {
	if v, ok := s.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	result, err := produce()
	if err != nil {
		return result, err
	}
	s.Set(key, result, ttl)
	return result, nil
}
