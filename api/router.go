package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"dwellscan/listingworker/services/cache"
	"dwellscan/listingworker/services/document"
)

// Deps carries everything the HTTP surface needs
type Deps struct {
	Scraper   ScrapeService
	Cache     cache.Store
	Generator *document.Generator
	Merger    *document.Merger

	// RateLimitPerMinute caps requests per client IP; zero disables the limit
	RateLimitPerMinute int

	// ScrapeTimeout bounds one scrape request end to end
	ScrapeTimeout time.Duration
}

// NewRouter builds the HTTP router
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	if d.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(d.RateLimitPerMinute, 1*time.Minute)) // protect the browser pool
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	RegisterHealth(r, HealthDeps{Cache: d.Cache})
	RegisterScrape(r, ScrapeDeps{Scraper: d.Scraper, Timeout: d.ScrapeTimeout})
	RegisterDocuments(r, DocumentDeps{
		Scraper:   d.Scraper,
		Generator: d.Generator,
		Merger:    d.Merger,
		Timeout:   d.ScrapeTimeout,
	})

	return r
}
