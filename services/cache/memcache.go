package cache

import (
	"context"
	"errors"

	"github.com/bradfitz/gomemcache/memcache"

	"dwellscan/listingworker/internal/listing"
)

// MemcacheStore implements Store using Memcached
type MemcacheStore struct {
	client *memcache.Client
}

// NewMemcacheStore creates a Memcached-backed store
func NewMemcacheStore(addr string) *MemcacheStore {
	return &MemcacheStore{
		client: memcache.New(addr),
	}
}

// Get retrieves the record stored for address, or ErrNotFound
func (s *MemcacheStore) Get(ctx context.Context, address string) (*listing.Record, error) {
	item, err := s.client.Get(Key(address))
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeEnvelope(item.Value)
}

// Put stores the record for address. Add refuses to overwrite an existing
// entry, which keeps the first write. A zero expiration means the entry
// never expires.
func (s *MemcacheStore) Put(ctx context.Context, address string, record *listing.Record, requestedBy string) error {
	data, err := encodeEnvelope(address, record, requestedBy)
	if err != nil {
		return err
	}

	err = s.client.Add(&memcache.Item{
		Key:        Key(address),
		Value:      data,
		Expiration: 0,
	})
	if errors.Is(err, memcache.ErrNotStored) {
		return nil
	}
	return err
}

// Ping checks connectivity to the Memcached server
func (s *MemcacheStore) Ping(ctx context.Context) error {
	return s.client.Ping()
}

// Close is a no-op, the memcache client holds no persistent connections
func (s *MemcacheStore) Close() error {
	return nil
}
