package formulas

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Rate converts a percentage (8 for 8%) into a decimal rate (0.08).
func Rate(percent float64) float64 {
	return percent / 100
}

// GrowthFactor returns (1 + rate)^periods.
func GrowthFactor(rate float64, periods int) float64 {
	return math.Pow(1+rate, float64(periods))
}

// DiscountFactor returns 1 / (1 + rate)^periods.
func DiscountFactor(rate float64, periods int) float64 {
	return 1 / GrowthFactor(rate, periods)
}

// PresentValue discounts a single amount received after the given number of periods.
func PresentValue(amount, rate float64, periods int) float64 {
	return amount / GrowthFactor(rate, periods)
}

// Project compounds base at rate and returns the amounts for periods 1..n.
// Returns nil when n <= 0.
func Project(base, rate float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	amounts := make([]float64, n)
	for t := 1; t <= n; t++ {
		amounts[t-1] = base * GrowthFactor(rate, t)
	}
	return amounts
}

// DiscountedStream returns the present value of amounts received at the end
// of periods 1..len(amounts).
//
// Formula: PV = Σ amounts[t-1] / (1 + rate)^t
func DiscountedStream(amounts []float64, rate float64) float64 {
	if len(amounts) == 0 {
		return 0
	}

	discounted := make([]float64, len(amounts))
	for i, amount := range amounts {
		discounted[i] = PresentValue(amount, rate, i+1)
	}
	return floats.Sum(discounted)
}

// Perpetuity values a level payment received forever.
//
// Formula: PV = payment / rate
//
// Returns ok=false when rate is zero; the value is then NaN.
func Perpetuity(payment, rate float64) (float64, bool) {
	if rate == 0 {
		return math.NaN(), false
	}
	return payment / rate, true
}

// GordonGrowth values a payment stream that starts at nextPayment and grows
// at growth forever.
//
// Formula: PV = nextPayment / (rate - growth)
//
// Returns ok=false when growth >= rate (the denominator is not positive);
// the value is then NaN.
func GordonGrowth(nextPayment, rate, growth float64) (float64, bool) {
	if growth >= rate {
		return math.NaN(), false
	}
	return nextPayment / (rate - growth), true
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
