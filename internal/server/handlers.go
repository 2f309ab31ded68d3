package server

import (
	"net/http"

	"github.com/aristath/dividend-calculator/internal/utils"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"version": Version,
		"service": "dividend-calculator",
	}

	s.writeJSON(w, r, http.StatusOK, response)
}

// writeJSON writes a JSON (or msgpack, when requested) response
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if err := utils.WriteResponse(w, r, status, data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}
