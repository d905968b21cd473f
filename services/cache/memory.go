package cache

import (
	"context"
	"sync"

	"dwellscan/listingworker/internal/listing"
)

// MemoryStore is an in-process Store used for development and tests
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
	}
}

// Get retrieves the record stored for address, or ErrNotFound
func (s *MemoryStore) Get(ctx context.Context, address string) (*listing.Record, error) {
	s.mu.RLock()
	data, ok := s.entries[Key(address)]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return decodeEnvelope(data)
}

// Put stores the record for address. An existing entry is kept untouched
// so the first writer wins.
func (s *MemoryStore) Put(ctx context.Context, address string, record *listing.Record, requestedBy string) error {
	data, err := encodeEnvelope(address, record, requestedBy)
	if err != nil {
		return err
	}

	key := Key(address)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		s.entries[key] = data
	}
	return nil
}

// Ping always succeeds for the in-memory store
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}

// Len reports the number of stored entries
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
