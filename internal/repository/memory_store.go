package repository

import (
	"sort"
	"sync"
)

// memoryStore is a concurrency-safe keyed record store. Records are cloned
// on the way in and out so callers never share state with the store.
type memoryStore[T any] struct {
	mu      sync.RWMutex
	records map[string]T
	clone   func(T) T
}

func newMemoryStore[T any](clone func(T) T) *memoryStore[T] {
	return &memoryStore[T]{
		records: map[string]T{},
		clone:   clone,
	}
}

func (s *memoryStore[T]) get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[key]
	if !ok {
		var zero T
		return zero, false
	}
	return s.clone(record), true
}

func (s *memoryStore[T]) put(key string, record T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = s.clone(record)
}

// listAll returns records ordered by key.
func (s *memoryStore[T]) listAll() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.records))
	for key := range s.records {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]T, 0, len(keys))
	for _, key := range keys {
		out = append(out, s.clone(s.records[key]))
	}
	return out
}

func (s *memoryStore[T]) delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
}
