package display

import (
	"fmt"
	"strconv"

	"github.com/aristath/dividend-calculator/internal/modules/charts"
	"github.com/aristath/dividend-calculator/internal/modules/currency"
	"github.com/aristath/dividend-calculator/internal/modules/valuation"
)

// BreakdownTerm is one component of a price
type BreakdownTerm struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// Equation is a model's formula with the current inputs substituted
type Equation struct {
	Model       valuation.Model `json:"model"`
	Title       string          `json:"title"`
	Notation    string          `json:"notation"`
	Color       string          `json:"color"`
	Symbolic    string          `json:"symbolic"`
	Substituted string          `json:"substituted"`
	Result      string          `json:"result"`
	Valid       bool            `json:"valid"`
	Constraint  string          `json:"constraint,omitempty"`
	Breakdown   []BreakdownTerm `json:"breakdown"`
	AriaLabel   string          `json:"aria_label"`
}

// equationContext carries the values every template reads
type equationContext struct {
	in       valuation.ValuationInput
	result   valuation.ValuationResult
	notation string
	f        currency.Formatter
}

// equationTemplate describes how one model's equation is written
type equationTemplate struct {
	symbolic    string
	constraint  string
	substituted func(c equationContext) string
	breakdown   func(c equationContext) []BreakdownTerm
	aria        func(c equationContext) string
	invalidAria func(c equationContext) string
}

var templates = map[valuation.Model]equationTemplate{
	valuation.ModelConstant: {
		symbolic:   "P = D0 / r",
		constraint: "r must be non-zero",
		substituted: func(c equationContext) string {
			return fmt.Sprintf("%s = %s / %s", c.notation, c.f.Format(c.in.D0), percent(c.in.RequiredReturn))
		},
		aria: func(c equationContext) string {
			return fmt.Sprintf("Constant Dividend Model equation: Price equals %s dollars divided by %s percent (i.e. %s) which equals %s dollars",
				raw(c.in.D0), currency.FormatNumber(c.in.RequiredReturn, 1),
				currency.FormatNumber(c.in.RequiredReturn/100, 4), currency.FormatNumber(c.result.Price, 2))
		},
		invalidAria: func(c equationContext) string {
			return "Constant Dividend Model equation: Invalid result. Required return must be non-zero"
		},
	},
	valuation.ModelGrowth: {
		symbolic:   "PV_t = D1 / (r − g) = D0(1 + g) / (r − g)",
		constraint: "g must be < r",
		substituted: func(c equationContext) string {
			return fmt.Sprintf("%s = %s / (%s − %s)", c.notation,
				c.f.Format(c.result.Breakdown.D1), percent(c.in.RequiredReturn), percent(c.in.ConstantGrowth))
		},
		aria: func(c equationContext) string {
			return fmt.Sprintf("Constant Growth Model equation: Present value at time t equals dividend one of %s dollars divided by required return %s percent minus growth rate %s percent, which equals %s dollars",
				currency.FormatNumber(c.result.Breakdown.D1, 2), currency.FormatNumber(c.in.RequiredReturn, 1),
				currency.FormatNumber(c.in.ConstantGrowth, 1), currency.FormatNumber(c.result.Price, 2))
		},
		invalidAria: func(c equationContext) string {
			return fmt.Sprintf("Constant Growth Model equation: Invalid result. Growth rate %s percent must be less than required return %s percent",
				raw(c.in.ConstantGrowth), raw(c.in.RequiredReturn))
		},
	},
	valuation.ModelChanging: {
		symbolic:   "PV_0 = Σ[t=1..n] D0(1 + gs)^t / (1 + r)^t + Σ[t=n+1..∞] D_{n+1}(1 + gl)^t / (1 + r)^t",
		constraint: "gl must be < r",
		substituted: func(c equationContext) string {
			n := c.in.ShortYears
			return fmt.Sprintf("%s = Σ[t=1..%d] %s(1 + %s)^t / (1 + %s)^t + Σ[t=%d..∞] D_%d(1 + %s)^t / (1 + %s)^t",
				c.notation, n, c.f.Format(c.in.D0), percent(c.in.ShortGrowth), percent(c.in.RequiredReturn),
				n+1, n+1, percent(c.in.LongGrowth), percent(c.in.RequiredReturn))
		},
		breakdown: func(c equationContext) []BreakdownTerm {
			return []BreakdownTerm{
				{Label: "high growth", Amount: c.f.Format(c.result.Breakdown.PVHighGrowth)},
				{Label: "terminal", Amount: c.f.Format(c.result.Breakdown.PVTerminal)},
			}
		},
		aria: func(c equationContext) string {
			return fmt.Sprintf("Changing Growth Model equation: Present value equals %s dollars from high growth period plus %s dollars from terminal value, which equals %s dollars",
				currency.FormatNumber(c.result.Breakdown.PVHighGrowth, 2), currency.FormatNumber(c.result.Breakdown.PVTerminal, 2),
				currency.FormatNumber(c.result.Price, 2))
		},
		invalidAria: func(c equationContext) string {
			return fmt.Sprintf("Changing Growth Model equation: Invalid result. Long-term growth rate %s percent must be less than required return %s percent",
				raw(c.in.LongGrowth), raw(c.in.RequiredReturn))
		},
	},
}

// BuildEquation renders the equation of a model for the given input and result.
// It returns ErrUnknownModel for a model without a template.
func BuildEquation(m valuation.Model, in valuation.ValuationInput, result valuation.ValuationResult, f currency.Formatter) (Equation, error) {
	tmpl, ok := templates[m]
	if !ok {
		return Equation{}, fmt.Errorf("%w: %q", valuation.ErrUnknownModel, m)
	}

	c := equationContext{in: in, result: result, notation: Notation(m), f: f}
	eq := Equation{
		Model:       m,
		Title:       m.Title(),
		Notation:    c.notation,
		Color:       charts.Color(m),
		Symbolic:    tmpl.symbolic,
		Substituted: tmpl.substituted(c),
		Valid:       result.Valid(),
		Breakdown:   []BreakdownTerm{},
	}

	if !eq.Valid {
		eq.Result = InvalidText
		eq.Constraint = tmpl.constraint
		eq.AriaLabel = tmpl.invalidAria(c)
		return eq, nil
	}

	eq.Result = "= " + f.Format(result.Price)
	eq.AriaLabel = tmpl.aria(c)
	if tmpl.breakdown != nil {
		eq.Breakdown = tmpl.breakdown(c)
	}
	return eq, nil
}

// BuildEquations renders the equation of every model in a report
func BuildEquations(report valuation.Report, f currency.Formatter) []Equation {
	equations := make([]Equation, 0, len(valuation.AllModels))
	for _, m := range valuation.AllModels {
		result, _ := report.Result(m)
		eq, err := BuildEquation(m, report.Input, result, f)
		if err != nil {
			continue
		}
		equations = append(equations, eq)
	}
	return equations
}

// percent renders a percentage input with one decimal, e.g. "12.0%"
func percent(v float64) string {
	return currency.FormatNumber(v, 1) + "%"
}

// raw renders a number in its shortest form
func raw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
