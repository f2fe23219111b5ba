package export

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/precincts.csv", PrecinctsHandler)
	r.Get("/turf-summary.csv", TurfSummaryHandler)
	r.Get("/assignments.csv", AssignmentsHandler)

	return r
}
