// Package handlers provides HTTP handlers for dividend discount valuation.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/dividend-calculator/internal/modules/valuation"
	"github.com/aristath/dividend-calculator/internal/utils"
)

// Handler handles valuation HTTP requests
type Handler struct {
	service    *valuation.Service
	maxHorizon int
	maxBatch   int
	log        zerolog.Logger
}

// NewHandler creates a new valuation handler
func NewHandler(service *valuation.Service, maxHorizon, maxBatch int, log zerolog.Logger) *Handler {
	return &Handler{
		service:    service,
		maxHorizon: maxHorizon,
		maxBatch:   maxBatch,
		log:        log.With().Str("handler", "valuation").Logger(),
	}
}

// HandleCalculate handles POST /api/valuation/calculate
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var request valuation.ValuationRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := request.Validate(h.maxHorizon); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report := h.service.Calculate(request.ToInput())
	if err := report.CheckFinite(); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, r, http.StatusOK, valuation.NewReportResponse(report))
}

// HandleBatch handles POST /api/valuation/batch
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var request valuation.BatchValuationRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(request.Scenarios) == 0 {
		h.writeError(w, r, http.StatusBadRequest, "No scenarios provided")
		return
	}

	// Bound batch size to prevent resource exhaustion
	if h.maxBatch > 0 && len(request.Scenarios) > h.maxBatch {
		h.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Too many scenarios (max %d)", h.maxBatch))
		return
	}

	inputs := make([]valuation.ValuationInput, len(request.Scenarios))
	for i, scenario := range request.Scenarios {
		if err := scenario.Validate(h.maxHorizon); err != nil {
			h.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("scenario %d: %s", i, err.Error()))
			return
		}
		inputs[i] = scenario.ToInput()
	}

	reports := h.service.CalculateBatch(inputs)

	response := valuation.BatchValuationResponse{
		Reports: make([]valuation.ReportResponse, len(reports)),
	}
	for i, report := range reports {
		if err := report.CheckFinite(); err != nil {
			h.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("scenario %d: %s", i, err.Error()))
			return
		}
		response.Reports[i] = valuation.NewReportResponse(report)
	}

	h.writeJSON(w, r, http.StatusOK, response)
}

// HandleModel handles POST /api/valuation/models/{model}
func (h *Handler) HandleModel(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "model")

	var request valuation.ValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := request.Validate(h.maxHorizon); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.CalculateModel(name, request.ToInput())
	if err != nil {
		if errors.Is(err, valuation.ErrUnknownModel) {
			h.writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "Valuation failed: "+err.Error())
		return
	}

	if err := result.CheckFinite(); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, r, http.StatusOK, valuation.NewResultResponse(result))
}

// writeJSON writes a JSON (or msgpack, when requested) response
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if err := utils.WriteResponse(w, r, status, data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if err := utils.WriteError(w, r, status, message); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode error response")
	}
}
