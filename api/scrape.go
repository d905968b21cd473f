package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"dwellscan/listingworker/internal/listing"
	"dwellscan/listingworker/logger"
	apperr "dwellscan/listingworker/pkg/errors"
)

// defaultScrapeTimeout bounds a scrape when no timeout is configured
const defaultScrapeTimeout = 90 * time.Second

// ScrapeService runs the scrape pipeline for one address
type ScrapeService interface {
	Scrape(ctx context.Context, address, requestedBy string) (*listing.Record, error)
}

type ScrapeDeps struct {
	Scraper ScrapeService
	Timeout time.Duration
}

type ScrapeRequest struct {
	URL         string `json:"url"`
	RequestedBy string `json:"requested_by,omitempty"`
}

func RegisterScrape(r chi.Router, d ScrapeDeps) {
	r.Post("/api/listings/scrape", func(w http.ResponseWriter, req *http.Request) {
		var body ScrapeRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		if err := validateAddress(body.URL); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_url", "detail": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(req.Context(), scrapeTimeout(d.Timeout))
		defer cancel()

		record, err := d.Scraper.Scrape(ctx, body.URL, body.RequestedBy)
		if err != nil {
			logger.ForAPI().Error().Err(err).Str("address", body.URL).Msg("Scrape failed")
			render.Status(req, scrapeErrorStatus(err))
			render.JSON(w, req, map[string]any{"error": "extraction_failed", "detail": err.Error()})
			return
		}

		render.JSON(w, req, record)
	})
}

func scrapeTimeout(configured time.Duration) time.Duration {
	if configured > 0 {
		return configured
	}
	return defaultScrapeTimeout
}

// scrapeErrorStatus maps pipeline failures to response codes. Timeouts are
// 504, everything else from the scrape is an upstream failure.
func scrapeErrorStatus(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	if apperr.Kind(err) == apperr.KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// validateAddress accepts absolute http(s) URLs only
func validateAddress(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return apperr.NewValidation("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return apperr.NewValidation("url is not parseable")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperr.NewValidation("url scheme must be http or https")
	}
	if u.Host == "" {
		return apperr.NewValidation("url host is required")
	}
	return nil
}
