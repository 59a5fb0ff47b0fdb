package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bumpwatch/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/routes/{origin}/{destination}", func(r chi.Router) {
				r.Get("/flights", handler(s.getV1RouteFlights))
				r.Get("/scores", handler(s.getV1RouteScores))
			})

			r.Post("/prefetch", handler(s.postV1Prefetch))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
