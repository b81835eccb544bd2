package http

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/live-scoreboard/internal/http/handlers"
)

// NewRouter registers HTTP routes on a chi router.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	r := chi.NewRouter()
	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
	r.Route("/matches", func(r chi.Router) {
		r.Get("/", handler.ListMatches)
		r.Post("/", handler.StartMatch)
		r.Get("/{id}", handler.MatchByID)
		r.Delete("/{id}", handler.FinishMatch)
		r.Put("/{id}/score", handler.UpdateScore)
	})
	return r
}
