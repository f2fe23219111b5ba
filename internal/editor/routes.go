package editor

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Post("/stage", StageHandler)
	r.Post("/apply", ApplyHandler)
	r.Post("/reset", ResetHandler)
	r.Get("/changes", ChangesHandler)

	return r
}
