package worker

import (
	"context"
	"sync"
	"time"

	"dwellscan/listingworker/helpers"
	"dwellscan/listingworker/internal/listing"
	"dwellscan/listingworker/services/events"
)

// warmupRequester is recorded as the requesting user for warmup entries
const warmupRequester = "warmup"

// Scraper runs one scrape for an address
type Scraper interface {
	Scrape(ctx context.Context, address, requestedBy string) (*listing.Record, error)
}

// Worker warms the cache by scraping a configured set of addresses once at
// startup. Addresses already cached cost nothing, so repeated restarts are
// cheap.
type Worker struct {
	scraper     Scraper
	publisher   events.Publisher
	logger      helpers.LoggerInterface
	addresses   []string
	concurrency int
}

// NewWorker creates a new warmup worker
func NewWorker(
	scraper Scraper,
	pub events.Publisher,
	logger helpers.LoggerInterface,
	addresses []string,
	concurrency int,
) *Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Worker{
		scraper:     scraper,
		publisher:   pub,
		logger:      logger,
		addresses:   addresses,
		concurrency: concurrency,
	}
}

// Run scrapes every configured address, at most concurrency at a time, and
// trims the event streams once the batch is done
func (w *Worker) Run(ctx context.Context) {
	if len(w.addresses) == 0 {
		return
	}

	start := time.Now()
	w.warmAll(ctx)
	w.logger.LogInfo("warmup finished for %d addresses in %s", len(w.addresses), time.Since(start))

	// Trim the streams after the batch
	if err := w.publisher.TrimStreams(); err != nil {
		w.logger.LogError("StreamTrimming", err)
	}
}

func (w *Worker) warmAll(ctx context.Context) {
	sem := make(chan struct{}, w.concurrency)
	var wg sync.WaitGroup

	for _, address := range w.addresses {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(address string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			w.warm(ctx, address)
		}(address)
	}
	wg.Wait()
}

// warm scrapes one address and logs the outcome
func (w *Worker) warm(ctx context.Context, address string) {
	record, err := w.scraper.Scrape(ctx, address, warmupRequester)
	if err != nil {
		w.logger.LogError(address, err)
		return
	}
	w.logger.LogInfo("warmed %s: %d models", address, len(record.Availability))
}
