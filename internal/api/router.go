package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/manan0209/gitroaster/internal/service"
)

// NewRouter wires the API routes.
func NewRouter(roasts service.RoastService, votes service.VoteService, log *zap.Logger) http.Handler {
	h := NewHandler(roasts, votes, log)

	r := chi.NewRouter()
	r.Use(Recover(log))
	r.Use(Logging(log))

	r.Get("/healthz", h.Health)

	r.Route("/api/roasts", func(r chi.Router) {
		r.Post("/", h.CreateRoast)
		r.Get("/top", h.HallOfShame)
		r.Get("/daily", h.RoastOfTheDay)
		r.Route("/{roastID}", func(r chi.Router) {
			r.Get("/", h.GetRoast)
			r.Post("/votes", h.CastVote)
			r.Get("/votes/{fingerprint}", h.HasVoted)
		})
	})

	return r
}
