package turf

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/regions", h.RegionsHandler)
	r.Get("/turfs", h.TurfsHandler)
	r.Post("/query", h.QueryHandler)
	r.Post("/features", h.FeaturesHandler)
	r.Get("/quick-views", h.QuickViewsHandler)

	return r
}
