package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"dwellscan/listingworker/logger"
	"dwellscan/listingworker/services/document"
)

type DocumentDeps struct {
	Scraper   ScrapeService
	Generator *document.Generator
	Merger    *document.Merger
	Timeout   time.Duration
}

type DocumentRequest struct {
	URL         string                `json:"url"`
	RequestedBy string                `json:"requested_by,omitempty"`
	Profile     map[string]string     `json:"profile,omitempty"`
	Attachments []document.Attachment `json:"attachments,omitempty"`
}

// RegisterDocuments wires the listing dossier endpoint: scrape (or reuse the
// cached record), fill the document template with the flattened fields, then
// merge the requested attachments behind it
func RegisterDocuments(r chi.Router, d DocumentDeps) {
	r.Post("/api/listings/documents", func(w http.ResponseWriter, req *http.Request) {
		if d.Generator == nil {
			render.Status(req, http.StatusServiceUnavailable)
			render.JSON(w, req, map[string]any{"error": "documents_disabled", "detail": "no converter configured"})
			return
		}

		var body DocumentRequest
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

		fields := document.FlattenRecord(record, body.RequestedBy, body.Profile)
		base, err := d.Generator.Generate(ctx, fields)
		if err != nil {
			logger.ForAPI().Error().Err(err).Str("address", body.URL).Msg("Document generation failed")
			render.Status(req, http.StatusBadGateway)
			render.JSON(w, req, map[string]any{"error": "generation_failed", "detail": err.Error()})
			return
		}

		merged := base
		if d.Merger != nil && len(body.Attachments) > 0 {
			merged, err = d.Merger.Merge(ctx, base, body.Attachments)
			if err != nil {
				logger.ForAPI().Error().Err(err).Str("address", body.URL).Msg("Document merge failed")
				render.Status(req, http.StatusBadGateway)
				render.JSON(w, req, map[string]any{"error": "merge_failed", "detail": err.Error()})
				return
			}
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.WriteHeader(http.StatusOK)
		w.Write(merged)
	})
}
