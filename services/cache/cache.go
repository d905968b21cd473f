package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"dwellscan/listingworker/internal/listing"
)

// ErrNotFound is returned when no record is stored for an address
var ErrNotFound = errors.New("cache: record not found")

// Store persists assembled listing records keyed by their source address.
// Records are write-once and never expire; a stored record is returned
// verbatim on every subsequent lookup.
type Store interface {
	// Get retrieves the record stored for address, or ErrNotFound
	Get(ctx context.Context, address string) (*listing.Record, error)

	// Put stores the record for address along with the requesting user
	Put(ctx context.Context, address string, record *listing.Record, requestedBy string) error

	// Ping reports whether the backing store is reachable
	Ping(ctx context.Context) error

	// Close releases the backing connection, if any
	Close() error
}

// Key derives the storage key for an address. Addresses are full URLs and
// contain characters some backends reject, so the exact string is hashed.
func Key(address string) string {
	sum := sha256.Sum256([]byte(address))
	return "listing:" + hex.EncodeToString(sum[:])
}

// encodeEnvelope wraps a record with its address metadata for storage
func encodeEnvelope(address string, record *listing.Record, requestedBy string) ([]byte, error) {
	return json.Marshal(listing.Envelope{
		Address:     address,
		RequestedBy: requestedBy,
		ScrapedAt:   time.Now().UTC(),
		Record:      record,
	})
}

// decodeEnvelope unwraps stored bytes back into the record
func decodeEnvelope(data []byte) (*listing.Record, error) {
	var env listing.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Record == nil {
		return nil, errors.New("cache: envelope without record")
	}
	return env.Record, nil
}
