package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"dwellscan/listingworker/services/cache"
)

type HealthDeps struct {
	Cache cache.Store
}

func RegisterHealth(r chi.Router, d HealthDeps) {
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		status := map[string]any{"ok": true}

		if d.Cache != nil {
			if err := d.Cache.Ping(req.Context()); err != nil {
				status["ok"] = false
				status["cache"] = err.Error()
				render.Status(req, http.StatusServiceUnavailable)
			}
		}

		render.JSON(w, req, status)
	})
}
