package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all valuation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/valuation", func(r chi.Router) {
		r.Post("/calculate", h.HandleCalculate)
		r.Post("/batch", h.HandleBatch)
		r.Post("/models/{model}", h.HandleModel)
	})
}
