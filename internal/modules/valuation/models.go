// Package valuation implements the dividend discount models and the service
// that evaluates them for a scenario.
package valuation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aristath/dividend-calculator/pkg/formulas"
)

// DefaultHorizon is the display window (in years) used when an input leaves
// Horizon unset.
const DefaultHorizon = 10

// ErrUnknownModel is returned when a model name does not match a known model.
var ErrUnknownModel = errors.New("unknown valuation model")

// ErrOverflow is returned when finite inputs produce a schedule or breakdown
// term outside the float64 range.
var ErrOverflow = errors.New("valuation overflows the representable range")

// Model identifies one of the dividend discount models
type Model string

const (
	ModelConstant Model = "constant" // Constant dividend (zero growth perpetuity)
	ModelGrowth   Model = "growth"   // Constant growth (Gordon growth)
	ModelChanging Model = "changing" // Two-stage growth
)

// AllModels lists every model in display order
var AllModels = []Model{ModelConstant, ModelGrowth, ModelChanging}

// ParseModel converts a model name into a Model
func ParseModel(name string) (Model, error) {
	switch Model(name) {
	case ModelConstant, ModelGrowth, ModelChanging:
		return Model(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
}

// Title returns the display name of the model
func (m Model) Title() string {
	switch m {
	case ModelConstant:
		return "Constant Dividend"
	case ModelGrowth:
		return "Constant Growth"
	case ModelChanging:
		return "Changing Growth"
	default:
		return string(m)
	}
}

// Invalid price reasons
const (
	ReasonZeroRequiredReturn = "required return must be non-zero"
	ReasonGrowthTooHigh      = "growth rate must be less than required return"
	ReasonLongGrowthTooHigh  = "long-term growth rate must be less than required return"
)

// ValuationInput holds the scalar inputs shared by all three models.
// Rates are percentages: 8 means 8%.
type ValuationInput struct {
	D0             float64 `json:"d0" yaml:"d0"`
	RequiredReturn float64 `json:"required_return" yaml:"required_return"`
	ConstantGrowth float64 `json:"constant_growth" yaml:"constant_growth"`
	ShortGrowth    float64 `json:"short_growth" yaml:"short_growth"`
	LongGrowth     float64 `json:"long_growth" yaml:"long_growth"`
	ShortYears     int     `json:"short_years" yaml:"short_years"`
	Horizon        int     `json:"horizon" yaml:"horizon"` // 0 = DefaultHorizon
}

// displayHorizon returns the schedule length to use for display
func (in ValuationInput) displayHorizon() int {
	if in.Horizon <= 0 {
		return DefaultHorizon
	}
	return in.Horizon
}

// CashFlow is one projected dividend in a model's display schedule
type CashFlow struct {
	Year     int     `json:"year"`
	Dividend float64 `json:"dividend"`
}

// Breakdown holds the intermediate terms behind a price.
// Terms that do not apply to a model are zero.
type Breakdown struct {
	D1               float64 `json:"d1"`
	PVHighGrowth     float64 `json:"pv_high_growth"`
	TerminalDividend float64 `json:"terminal_dividend"`
	TerminalValue    float64 `json:"terminal_value"`
	PVTerminal       float64 `json:"pv_terminal"`
}

// ValuationResult is the output of a single model.
// Price is NaN when the inputs are invalid for the model; Reason says why.
type ValuationResult struct {
	Model     Model
	Price     float64
	CashFlows []CashFlow
	Breakdown Breakdown
	Reason    string
}

// Valid reports whether the price is finite
func (r ValuationResult) Valid() bool {
	return formulas.IsFinite(r.Price)
}

// CheckFinite reports ErrOverflow when a scheduled dividend or breakdown term
// is not finite, or when the price overflowed without an invalidity reason.
func (r ValuationResult) CheckFinite() error {
	for _, cf := range r.CashFlows {
		if !formulas.IsFinite(cf.Dividend) {
			return fmt.Errorf("%w: %s dividend in year %d", ErrOverflow, r.Model, cf.Year)
		}
	}

	terms := []struct {
		name  string
		value float64
	}{
		{"d1", r.Breakdown.D1},
		{"pv_high_growth", r.Breakdown.PVHighGrowth},
		{"terminal_dividend", r.Breakdown.TerminalDividend},
		{"terminal_value", r.Breakdown.TerminalValue},
		{"pv_terminal", r.Breakdown.PVTerminal},
	}
	for _, term := range terms {
		if !formulas.IsFinite(term.value) {
			return fmt.Errorf("%w: %s %s", ErrOverflow, r.Model, term.name)
		}
	}

	if math.IsInf(r.Price, 0) && r.Reason == "" {
		return fmt.Errorf("%w: %s price", ErrOverflow, r.Model)
	}
	return nil
}

// FlowAt returns the dividend scheduled for year, or 0 if the schedule has no entry
func (r ValuationResult) FlowAt(year int) float64 {
	for _, cf := range r.CashFlows {
		if cf.Year == year {
			return cf.Dividend
		}
	}
	return 0
}

// Report bundles the three model results computed for one input
type Report struct {
	ID           string
	Input        ValuationInput
	Constant     ValuationResult
	Growth       ValuationResult
	Changing     ValuationResult
	CalculatedAt time.Time
}

// CheckFinite runs ValuationResult.CheckFinite for every model of the report
func (r Report) CheckFinite() error {
	for _, m := range AllModels {
		result, _ := r.Result(m)
		if err := result.CheckFinite(); err != nil {
			return err
		}
	}
	return nil
}

// Result returns the result for the given model
func (r Report) Result(m Model) (ValuationResult, bool) {
	switch m {
	case ModelConstant:
		return r.Constant, true
	case ModelGrowth:
		return r.Growth, true
	case ModelChanging:
		return r.Changing, true
	default:
		return ValuationResult{}, false
	}
}

// SelectionAll selects every model
const SelectionAll = "all"

// ParseSelection resolves "all" or a single model name into the models to show.
// An empty name selects all models.
func ParseSelection(name string) ([]Model, error) {
	if name == "" || name == SelectionAll {
		return AllModels, nil
	}
	m, err := ParseModel(name)
	if err != nil {
		return nil, err
	}
	return []Model{m}, nil
}
