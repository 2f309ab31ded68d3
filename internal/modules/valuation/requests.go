package valuation

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidInput wraps every input validation failure
var ErrInvalidInput = errors.New("invalid valuation input")

// Rate bounds accepted by the input layer, in percent
const (
	MinRatePercent = -100.0
	MaxRatePercent = 1000.0
)

// ValuationRequest is the API form of ValuationInput
type ValuationRequest struct {
	D0             float64 `json:"d0" yaml:"d0"`
	RequiredReturn float64 `json:"required_return" yaml:"required_return"`
	ConstantGrowth float64 `json:"constant_growth" yaml:"constant_growth"`
	ShortGrowth    float64 `json:"short_growth" yaml:"short_growth"`
	LongGrowth     float64 `json:"long_growth" yaml:"long_growth"`
	ShortYears     int     `json:"short_years" yaml:"short_years"`
	Horizon        int     `json:"horizon,omitempty" yaml:"horizon"`
}

// Validate checks the request against the input-layer rules.
// The engine itself never validates; this is the upstream collaborator's job.
func (req ValuationRequest) Validate(maxHorizon int) error {
	rates := []struct {
		name  string
		value float64
	}{
		{"required_return", req.RequiredReturn},
		{"constant_growth", req.ConstantGrowth},
		{"short_growth", req.ShortGrowth},
		{"long_growth", req.LongGrowth},
	}

	if math.IsNaN(req.D0) || math.IsInf(req.D0, 0) {
		return fmt.Errorf("%w: d0 must be a finite number", ErrInvalidInput)
	}
	if req.D0 < 0 {
		return fmt.Errorf("%w: d0 must be non-negative", ErrInvalidInput)
	}

	for _, rate := range rates {
		if math.IsNaN(rate.value) || math.IsInf(rate.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, rate.name)
		}
		if rate.value < MinRatePercent || rate.value > MaxRatePercent {
			return fmt.Errorf("%w: %s must be between %.0f and %.0f percent",
				ErrInvalidInput, rate.name, MinRatePercent, MaxRatePercent)
		}
	}

	if req.ShortYears < 0 {
		return fmt.Errorf("%w: short_years must be non-negative", ErrInvalidInput)
	}
	if maxHorizon > 0 && req.ShortYears > maxHorizon {
		return fmt.Errorf("%w: short_years must be at most %d", ErrInvalidInput, maxHorizon)
	}
	if req.Horizon < 0 {
		return fmt.Errorf("%w: horizon must be non-negative", ErrInvalidInput)
	}
	if maxHorizon > 0 && req.Horizon > maxHorizon {
		return fmt.Errorf("%w: horizon must be at most %d", ErrInvalidInput, maxHorizon)
	}

	return nil
}

// ToInput converts the request into an engine input
func (req ValuationRequest) ToInput() ValuationInput {
	return ValuationInput{
		D0:             req.D0,
		RequiredReturn: req.RequiredReturn,
		ConstantGrowth: req.ConstantGrowth,
		ShortGrowth:    req.ShortGrowth,
		LongGrowth:     req.LongGrowth,
		ShortYears:     req.ShortYears,
		Horizon:        req.Horizon,
	}
}

// BatchValuationRequest holds many scenarios evaluated together
type BatchValuationRequest struct {
	Scenarios []ValuationRequest `json:"scenarios"`
}

// ResultResponse is the API form of ValuationResult.
// Price is null when the model is invalid for the inputs.
type ResultResponse struct {
	Model     Model      `json:"model"`
	Name      string     `json:"name"`
	Price     *float64   `json:"price"`
	Valid     bool       `json:"valid"`
	Reason    string     `json:"reason,omitempty"`
	CashFlows []CashFlow `json:"cash_flows"`
	Breakdown Breakdown  `json:"breakdown"`
}

// NewResultResponse converts a result into its API form
func NewResultResponse(r ValuationResult) ResultResponse {
	resp := ResultResponse{
		Model:     r.Model,
		Name:      r.Model.Title(),
		Valid:     r.Valid(),
		Reason:    r.Reason,
		CashFlows: r.CashFlows,
		Breakdown: r.Breakdown,
	}
	if resp.CashFlows == nil {
		resp.CashFlows = []CashFlow{}
	}
	if resp.Valid {
		price := r.Price
		resp.Price = &price
	}
	return resp
}

// ReportResponse is the API form of Report
type ReportResponse struct {
	ID           string         `json:"id"`
	Input        ValuationInput `json:"input"`
	Constant     ResultResponse `json:"constant"`
	Growth       ResultResponse `json:"growth"`
	Changing     ResultResponse `json:"changing"`
	CalculatedAt string         `json:"calculated_at"`
}

// NewReportResponse converts a report into its API form
func NewReportResponse(r Report) ReportResponse {
	return ReportResponse{
		ID:           r.ID,
		Input:        r.Input,
		Constant:     NewResultResponse(r.Constant),
		Growth:       NewResultResponse(r.Growth),
		Changing:     NewResultResponse(r.Changing),
		CalculatedAt: r.CalculatedAt.Format(time.RFC3339),
	}
}

// BatchValuationResponse holds reports in scenario order
type BatchValuationResponse struct {
	Reports []ReportResponse `json:"reports"`
}
