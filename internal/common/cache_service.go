package common

import (
	"github.com/patrickmn/go-cache"
)

// MemoryStore is the in-process Store backed by go-cache
type MemoryStore[V any] struct {
	cache *cache.Cache
}

// Ensure MemoryStore implements Store
var _ Store[struct{}] = (*MemoryStore[struct{}])(nil)

// NewMemoryStore creates a store whose items never expire and which runs no
// janitor goroutine.
func NewMemoryStore[V any]() *MemoryStore[V] {
	return &MemoryStore[V]{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore[V]) Get(key string) (V, bool) {
	var zero V
	val, found := s.cache.Get(key)
	if !found {
		return zero, false
	}
	typed, ok := val.(V)
	if !ok {
		return zero, false
	}
	return typed, true
}

func (s *MemoryStore[V]) Set(key string, value V) {
	s.cache.Set(key, value, cache.NoExpiration)
}

func (s *MemoryStore[V]) Clear() {
	s.cache.Flush()
}

func (s *MemoryStore[V]) Len() int {
	return s.cache.ItemCount()
}
