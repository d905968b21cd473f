package events

import (
	"context"

	"dwellscan/listingworker/internal/listing"
)

// Publisher announces listing lifecycle events to downstream consumers
type Publisher interface {
	// PublishExtracted publishes a freshly extracted and cached record
	PublishExtracted(ctx context.Context, address string, record *listing.Record) error

	// TrimStreams trims the event streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}

// Noop is a Publisher that drops every event, used when events are disabled
type Noop struct{}

func (Noop) PublishExtracted(context.Context, string, *listing.Record) error { return nil }
func (Noop) TrimStreams() error                                              { return nil }
func (Noop) Close() error                                                    { return nil }
