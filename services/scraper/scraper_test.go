package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"dwellscan/listingworker/internal/browser"
	"dwellscan/listingworker/internal/extractor"
	"dwellscan/listingworker/internal/listing"
	apperr "dwellscan/listingworker/pkg/errors"
	"dwellscan/listingworker/services/cache"
	"dwellscan/listingworker/services/events"
)

const listingPageHTML = `
<html><body>
<h1 class="propertyName">Arbor Lofts</h1>
<div class="propertyAddressContainer"><span>4524 Oak Creek Dr,</span> <span>Austin, TX 78727</span></div>
<ul>
	<li class="priceBedRangeInfoInnerContainer">
		<p class="rentInfoLabel">Monthly Rent</p>
		<p class="rentInfoDetail">$1,500 - $2,240</p>
	</li>
</ul>
<div class="pricingGridItem">
	<div class="floorPlanButtonImage" data-image="https://img.example.com/a1.jpg"></div>
	<span class="modelName">A1</span>
	<span class="rentLabel">$1,500</span>
	<ul>
		<li class="unitContainer">
			<div class="unitColumn">104</div>
			<div class="pricingColumn">$1,500</div>
			<div class="sqftColumn">650</div>
			<div class="availableColumn">Now</div>
		</li>
	</ul>
</div>
<section class="contactInfo">
	<div class="phoneNumber" data-digits="5125550188">(512) 555-0188</div>
	<div class="daysHoursContainer"><span class="days">Mon - Fri</span><span class="hours">9:00 AM - 6:00 PM</span></div>
</section>
<section class="amenitiesSection">
	<h2 class="amenitiesSectionTitle">Community Amenities</h2>
	<div class="amenityGroup"><h3 class="amenityGroupHeader">Recreation</h3><ul><li>Pool</li></ul></div>
</section>
<section id="feesSection">
	<div id="fees-policies-pets-tab">
		<div class="feesPoliciesCard"><ul><li class="commentRow">Cats welcome.</li></ul></div>
	</div>
</section>
</body></html>`

type mockStore struct {
	*cache.MemoryStore
	getErr error
	putErr error
	puts   int
	lastBy string
}

func newMockStore() *mockStore {
	return &mockStore{MemoryStore: cache.NewMemoryStore()}
}

func (m *mockStore) Get(ctx context.Context, address string) (*listing.Record, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.MemoryStore.Get(ctx, address)
}

func (m *mockStore) Put(ctx context.Context, address string, record *listing.Record, requestedBy string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.lastBy = requestedBy
	return m.MemoryStore.Put(ctx, address, record, requestedBy)
}

type staticBrowser struct {
	html     string
	err      error
	sessions int
}

func (b *staticBrowser) WithSession(ctx context.Context, address string, fn func(browser.Page) error) error {
	if b.err != nil {
		return b.err
	}
	b.sessions++
	return fn(browser.MustStaticPage(b.html))
}

type mockPublisher struct {
	published []string
	err       error
}

var _ events.Publisher = (*mockPublisher)(nil)

func (p *mockPublisher) PublishExtracted(ctx context.Context, address string, record *listing.Record) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, address)
	return nil
}

func (p *mockPublisher) TrimStreams() error { return nil }
func (p *mockPublisher) Close() error       { return nil }

func TestScrapeMissThenHit(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	b := &staticBrowser{html: listingPageHTML}
	pub := &mockPublisher{}
	svc := New(store, b, pub)

	address := "https://example.com/listings/arbor-lofts"

	first, err := svc.Scrape(ctx, address, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "Arbor Lofts", first.PropertyName)
	assert.Len(t, first.Availability, 1)
	assert.NotNil(t, first.ContactInfo)
	assert.NotNil(t, first.Amenities)
	assert.NotNil(t, first.FeesPolicies)
	assert.Equal(t, 1, b.sessions)
	assert.Equal(t, 1, store.puts)
	assert.Equal(t, "user-1", store.lastBy)
	assert.Equal(t, []string{address}, pub.published)

	// The second request must not open a browser session and must return
	// the stored record bit for bit
	second, err := svc.Scrape(ctx, address, "user-2")
	assert.NoError(t, err)
	assert.Equal(t, 1, b.sessions)
	assert.Equal(t, 1, store.puts)

	want, _ := json.Marshal(first)
	have, _ := json.Marshal(second)
	assert.JSONEq(t, string(want), string(have))
}

// A failing optional section leaves its field absent and everything else intact
func TestScrapePartialFailure(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	b := &staticBrowser{html: listingPageHTML}
	svc := New(store, b, &mockPublisher{})
	svc.contactFn = func(browser.Page) (*listing.ContactInfo, error) {
		return nil, apperr.NewSection("contact", "render never settled", nil)
	}

	address := "https://example.com/listings/arbor-lofts"

	record, err := svc.Scrape(ctx, address, "")
	assert.NoError(t, err)
	assert.Nil(t, record.ContactInfo)
	assert.NotNil(t, record.Amenities)
	assert.NotNil(t, record.FeesPolicies)
	assert.Equal(t, "Arbor Lofts", record.PropertyName)

	// The partial record is what got cached
	cached, err := store.MemoryStore.Get(ctx, address)
	assert.NoError(t, err)
	assert.Nil(t, cached.ContactInfo)
	assert.NotNil(t, cached.Amenities)
}

func TestScrapeRequiredSectionFails(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	b := &staticBrowser{html: listingPageHTML}
	pub := &mockPublisher{}
	svc := New(store, b, pub)
	svc.availabilityFn = func(browser.Page) (*extractor.AvailabilityData, error) {
		return nil, apperr.NewSection("availability", "no listing content found", nil)
	}

	record, err := svc.Scrape(ctx, "https://example.com/listings/arbor-lofts", "")
	assert.Error(t, err)
	assert.Nil(t, record)
	assert.Equal(t, 0, store.puts)
	assert.Empty(t, pub.published)

	var se *apperr.ScrapeError
	assert.ErrorAs(t, err, &se)
	assert.True(t, se.IsFatal())
}

func TestScrapeSessionError(t *testing.T) {
	ctx := context.Background()
	sessionErr := apperr.NewSession("browser launch failed", nil)
	svc := New(newMockStore(), &staticBrowser{err: sessionErr}, &mockPublisher{})

	record, err := svc.Scrape(ctx, "https://example.com/listings/arbor-lofts", "")
	assert.Nil(t, record)
	assert.ErrorIs(t, err, sessionErr)
}

// A broken cache lookup is treated as a miss
func TestScrapeCacheLookupFailure(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.getErr = errors.New("connection refused")
	b := &staticBrowser{html: listingPageHTML}
	svc := New(store, b, &mockPublisher{})

	record, err := svc.Scrape(ctx, "https://example.com/listings/arbor-lofts", "")
	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.Equal(t, 1, b.sessions)
	assert.Equal(t, 1, store.puts)
}

// A dropped cache write still returns the fresh record, but nothing is published
func TestScrapeCacheWriteFailure(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.putErr = errors.New("connection refused")
	pub := &mockPublisher{}
	svc := New(store, &staticBrowser{html: listingPageHTML}, pub)

	record, err := svc.Scrape(ctx, "https://example.com/listings/arbor-lofts", "")
	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.Empty(t, pub.published)
}
