package valuation

import (
	"math"

	"github.com/aristath/dividend-calculator/pkg/formulas"
)

// ConstantDividend values a dividend that stays at D0 forever.
//
// Formula: P = D0 / r
//
// The price is invalid when the required return is zero. The schedule holds
// a single reference entry at year 0.
func ConstantDividend(in ValuationInput) ValuationResult {
	result := ValuationResult{
		Model:     ModelConstant,
		CashFlows: []CashFlow{{Year: 0, Dividend: in.D0}},
	}

	price, ok := formulas.Perpetuity(in.D0, formulas.Rate(in.RequiredReturn))
	result.Price = price
	if !ok {
		result.Reason = ReasonZeroRequiredReturn
	}

	return result
}

// ConstantGrowth values a dividend growing at a constant rate forever (Gordon growth).
//
// Formula: PV = D1 / (r - g), D1 = D0 * (1 + g)
//
// The price is invalid whenever g >= r.
func ConstantGrowth(in ValuationInput) ValuationResult {
	g := formulas.Rate(in.ConstantGrowth)
	d1 := in.D0 * (1 + g)

	result := ValuationResult{
		Model:     ModelGrowth,
		Breakdown: Breakdown{D1: d1},
		CashFlows: growthSchedule(in.D0, g, in.displayHorizon()),
	}

	if in.ConstantGrowth >= in.RequiredReturn {
		result.Price = math.NaN()
		result.Reason = ReasonGrowthTooHigh
		return result
	}

	price, ok := formulas.GordonGrowth(d1, formulas.Rate(in.RequiredReturn), g)
	result.Price = price
	if !ok {
		result.Reason = ReasonGrowthTooHigh
	}

	return result
}

// ChangingGrowth values a dividend that grows at ShortGrowth for ShortYears
// and at LongGrowth forever after.
//
// Formula:
//
//	PV_high     = Σ_{t=1..n} D0(1+gs)^t / (1+r)^t
//	D_{n+1}     = D0(1+gs)^n (1+gl)
//	PV_terminal = [D_{n+1} / (r - gl)] / (1+r)^n
//	P           = PV_high + PV_terminal
//
// The price is invalid whenever gl >= r, regardless of PV_high.
func ChangingGrowth(in ValuationInput) ValuationResult {
	r := formulas.Rate(in.RequiredReturn)
	gs := formulas.Rate(in.ShortGrowth)
	gl := formulas.Rate(in.LongGrowth)
	n := in.ShortYears

	pvHigh := formulas.DiscountedStream(formulas.Project(in.D0, gs, n), r)

	horizon := in.displayHorizon()
	if horizon < n+1 {
		horizon = n + 1
	}

	result := ValuationResult{
		Model:     ModelChanging,
		Breakdown: Breakdown{PVHighGrowth: pvHigh},
		CashFlows: twoStageSchedule(in.D0, gs, gl, n, horizon),
	}

	// Check the terminal denominator before building the terminal term.
	if in.LongGrowth >= in.RequiredReturn {
		result.Price = math.NaN()
		result.Reason = ReasonLongGrowthTooHigh
		return result
	}

	terminalDividend := in.D0 * formulas.GrowthFactor(gs, n) * (1 + gl)
	terminalValue, ok := formulas.GordonGrowth(terminalDividend, r, gl)
	if !ok {
		result.Price = math.NaN()
		result.Reason = ReasonLongGrowthTooHigh
		return result
	}
	pvTerminal := formulas.PresentValue(terminalValue, r, n)

	result.Breakdown.TerminalDividend = terminalDividend
	result.Breakdown.TerminalValue = terminalValue
	result.Breakdown.PVTerminal = pvTerminal
	result.Price = pvHigh + pvTerminal

	return result
}

// Evaluate runs the named model
func Evaluate(m Model, in ValuationInput) (ValuationResult, error) {
	switch m {
	case ModelConstant:
		return ConstantDividend(in), nil
	case ModelGrowth:
		return ConstantGrowth(in), nil
	case ModelChanging:
		return ChangingGrowth(in), nil
	default:
		return ValuationResult{}, ErrUnknownModel
	}
}

// growthSchedule returns D0(1+g)^t for t = 0..horizon
func growthSchedule(d0, g float64, horizon int) []CashFlow {
	flows := make([]CashFlow, 0, horizon+1)
	for t := 0; t <= horizon; t++ {
		flows = append(flows, CashFlow{Year: t, Dividend: d0 * formulas.GrowthFactor(g, t)})
	}
	return flows
}

// twoStageSchedule compounds at gs through year n and at gl afterwards
func twoStageSchedule(d0, gs, gl float64, n, horizon int) []CashFlow {
	flows := make([]CashFlow, 0, horizon+1)
	for t := 0; t <= horizon; t++ {
		var div float64
		if t <= n {
			div = d0 * formulas.GrowthFactor(gs, t)
		} else {
			div = d0 * formulas.GrowthFactor(gs, n) * formulas.GrowthFactor(gl, t-n)
		}
		flows = append(flows, CashFlow{Year: t, Dividend: div})
	}
	return flows
}
