package scraper

import (
	"context"
	"errors"

	"dwellscan/listingworker/internal/browser"
	"dwellscan/listingworker/internal/extractor"
	"dwellscan/listingworker/internal/listing"
	"dwellscan/listingworker/logger"
	apperr "dwellscan/listingworker/pkg/errors"
	"dwellscan/listingworker/services/cache"
	"dwellscan/listingworker/services/events"
)

// Browser opens a page session for an address and hands it to fn
type Browser interface {
	WithSession(ctx context.Context, address string, fn func(browser.Page) error) error
}

// Service runs the scrape pipeline for a listing address: cache lookup,
// section extraction in a browser session, cache write, event publish.
type Service struct {
	cache   cache.Store
	browser Browser
	events  events.Publisher
	log     *logger.Logger

	availabilityFn func(browser.Page) (*extractor.AvailabilityData, error)
	contactFn      func(browser.Page) (*listing.ContactInfo, error)
	amenitiesFn    func(browser.Page) (*listing.AmenitiesResult, error)
	feesFn         func(browser.Page) (*listing.FeesPoliciesResult, error)
}

// New creates a scrape service wired to the section extractors
func New(store cache.Store, b Browser, pub events.Publisher) *Service {
	return &Service{
		cache:          store,
		browser:        b,
		events:         pub,
		log:            logger.ForScraper(),
		availabilityFn: extractor.Availability,
		contactFn:      extractor.Contact,
		amenitiesFn:    extractor.Amenities,
		feesFn:         extractor.FeesPolicies,
	}
}

// Scrape returns the record for address, serving it from the cache when
// present. On a miss it runs the extraction sequence in a fresh browser
// session and persists the assembled record. Availability is required;
// the remaining sections are best-effort and an individual failure only
// leaves the matching field absent.
func (s *Service) Scrape(ctx context.Context, address, requestedBy string) (*listing.Record, error) {
	cached, err := s.cache.Get(ctx, address)
	if err == nil {
		s.log.Debug().Str("address", address).Msg("Cache hit")
		return cached, nil
	}
	if !errors.Is(err, cache.ErrNotFound) {
		// A broken lookup is a miss, the scrape still runs
		s.log.Warn().Err(err).Str("address", address).Msg("Cache lookup failed")
	}

	var record *listing.Record
	err = s.browser.WithSession(ctx, address, func(p browser.Page) error {
		avail, err := s.availabilityFn(p)
		if err != nil {
			return apperr.NewExtraction("availability", "required section failed", err)
		}

		record = &listing.Record{
			PropertyName:    avail.PropertyName,
			PropertyAddress: avail.PropertyAddress,
			BedInfo:         avail.BedInfo,
			Availability:    avail.Models,
		}

		if contact, err := s.contactFn(p); err != nil {
			s.log.Warn().Err(err).Str("address", address).Msg("Contact extraction failed")
		} else {
			record.ContactInfo = contact
		}

		if amenities, err := s.amenitiesFn(p); err != nil {
			s.log.Warn().Err(err).Str("address", address).Msg("Amenities extraction failed")
		} else {
			record.Amenities = amenities
		}

		if fees, err := s.feesFn(p); err != nil {
			s.log.Warn().Err(err).Str("address", address).Msg("Fees extraction failed")
		} else {
			record.FeesPolicies = fees
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("address", address).
		Int("models", len(record.Availability)).
		Msg("Extraction complete")

	if err := s.cache.Put(ctx, address, record, requestedBy); err != nil {
		// The fresh record is still returned when the write is dropped
		s.log.Warn().Err(err).Str("address", address).Msg("Cache write failed")
	} else if err := s.events.PublishExtracted(ctx, address, record); err != nil {
		s.log.Warn().Err(err).Str("address", address).Msg("Event publish failed")
	}

	return record, nil
}
