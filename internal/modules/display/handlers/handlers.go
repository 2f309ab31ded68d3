// Package handlers provides HTTP handlers for rendered chart, table and
// equation views.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/dividend-calculator/internal/modules/charts"
	"github.com/aristath/dividend-calculator/internal/modules/currency"
	"github.com/aristath/dividend-calculator/internal/modules/display"
	"github.com/aristath/dividend-calculator/internal/modules/valuation"
	"github.com/aristath/dividend-calculator/internal/utils"
)

// Handler handles display HTTP requests
type Handler struct {
	service    *valuation.Service
	formatter  currency.Formatter
	maxHorizon int
	log        zerolog.Logger
}

// NewHandler creates a new display handler
func NewHandler(service *valuation.Service, formatter currency.Formatter, maxHorizon int, log zerolog.Logger) *Handler {
	return &Handler{
		service:    service,
		formatter:  formatter,
		maxHorizon: maxHorizon,
		log:        log.With().Str("handler", "display").Logger(),
	}
}

// ChartResponse is the body of the chart endpoint
type ChartResponse struct {
	Selection string           `json:"selection"`
	Chart     charts.ChartData `json:"chart"`
}

// TableResponse is the body of the table endpoint
type TableResponse struct {
	Selection string        `json:"selection"`
	Table     display.Table `json:"table"`
}

// EquationsResponse is the body of the equations endpoint
type EquationsResponse struct {
	Equations []display.Equation `json:"equations"`
}

// HandleChart handles POST /api/display/chart?model=
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	report, ok := h.calculate(w, r)
	if !ok {
		return
	}

	selection, models, ok := h.selection(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, r, http.StatusOK, ChartResponse{
		Selection: selection,
		Chart:     charts.BuildChart(report, models),
	})
}

// HandleTable handles POST /api/display/table?model=
func (h *Handler) HandleTable(w http.ResponseWriter, r *http.Request) {
	report, ok := h.calculate(w, r)
	if !ok {
		return
	}

	selection, models, ok := h.selection(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, r, http.StatusOK, TableResponse{
		Selection: selection,
		Table:     display.BuildTable(report, models, h.formatter),
	})
}

// HandleEquations handles POST /api/display/equations
func (h *Handler) HandleEquations(w http.ResponseWriter, r *http.Request) {
	report, ok := h.calculate(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, r, http.StatusOK, EquationsResponse{
		Equations: display.BuildEquations(report, h.formatter),
	})
}

// HandleView handles POST /api/display/view?model=
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	report, ok := h.calculate(w, r)
	if !ok {
		return
	}

	view, err := display.BuildView(report, r.URL.Query().Get("model"), h.formatter)
	if err != nil {
		h.writeSelectionError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, view)
}

// calculate decodes and validates the request body and runs the valuation
func (h *Handler) calculate(w http.ResponseWriter, r *http.Request) (valuation.Report, bool) {
	var request valuation.ValuationRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return valuation.Report{}, false
	}

	if err := request.Validate(h.maxHorizon); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return valuation.Report{}, false
	}

	report := h.service.Calculate(request.ToInput())
	if err := report.CheckFinite(); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return valuation.Report{}, false
	}

	return report, true
}

// selection resolves the ?model= query parameter
func (h *Handler) selection(w http.ResponseWriter, r *http.Request) (string, []valuation.Model, bool) {
	selection := r.URL.Query().Get("model")
	models, err := valuation.ParseSelection(selection)
	if err != nil {
		h.writeSelectionError(w, r, err)
		return "", nil, false
	}
	if selection == "" {
		selection = valuation.SelectionAll
	}
	return selection, models, true
}

func (h *Handler) writeSelectionError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, valuation.ErrUnknownModel) {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	h.writeError(w, r, http.StatusInternalServerError, err.Error())
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
