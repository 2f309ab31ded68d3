package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all display routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/display", func(r chi.Router) {
		r.Post("/chart", h.HandleChart)
		r.Post("/table", h.HandleTable)
		r.Post("/equations", h.HandleEquations)
		r.Post("/view", h.HandleView)
	})
}
