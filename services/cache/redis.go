package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"dwellscan/listingworker/internal/listing"
)

// RedisStore implements Store using Redis
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(addr string, db int) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
	}
}

// Get retrieves the record stored for address, or ErrNotFound
func (s *RedisStore) Get(ctx context.Context, address string) (*listing.Record, error) {
	data, err := s.client.Get(ctx, Key(address)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeEnvelope(data)
}

// Put stores the record for address. SetNX keeps an existing entry so the
// first write wins, and a zero TTL means the entry never expires.
func (s *RedisStore) Put(ctx context.Context, address string, record *listing.Record, requestedBy string) error {
	data, err := encodeEnvelope(address, record, requestedBy)
	if err != nil {
		return err
	}
	return s.client.SetNX(ctx, Key(address), data, 0).Err()
}

// Ping checks connectivity to the Redis server
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
