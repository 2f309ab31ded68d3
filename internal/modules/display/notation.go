// Package display renders valuation reports as tables and equations.
package display

import (
	"github.com/aristath/dividend-calculator/internal/modules/valuation"
)

// Notation returns the price symbol a model is written with
func Notation(m valuation.Model) string {
	switch m {
	case valuation.ModelConstant:
		return "P"
	case valuation.ModelGrowth:
		return "PV_t"
	case valuation.ModelChanging:
		return "PV_0"
	default:
		return "P"
	}
}
