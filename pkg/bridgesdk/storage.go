package bridgesdk

import (
	"context"
	"sync"
)

// TokenStore is the opaque key-value persistence the Session keeps its
// passport record in. Implementations must treat the record as a unit:
// Set overwrites, Get returns nil (not an error) when no record exists.
type TokenStore interface {
	Get(ctx context.Context, key string) (*AccessTokens, error)
	Set(ctx context.Context, key string, tokens *AccessTokens) error
	Remove(ctx context.Context, key string) error
}

// MemoryStore is an in-process TokenStore. It is the default for short-lived
// clients; long-lived clients should use the sqlite store so passports
// survive restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]AccessTokens
}

// NewMemoryStore returns an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]AccessTokens)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*AccessTokens, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	copied := record
	return &copied, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, tokens *AccessTokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = *tokens
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}
