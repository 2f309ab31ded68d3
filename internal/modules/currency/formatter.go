// Package currency formats monetary amounts for charts, tables and equations.
package currency

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Style selects how the currency is rendered next to an amount
type Style string

const (
	StyleCode   Style = "code"   // USD 1,234.56
	StyleSymbol Style = "symbol" // $1,234.56
)

// minus sign used for negative amounts outside table cells
const minus = "−"

// ParseStyle converts a style name into a Style.
// An empty name selects StyleCode.
func ParseStyle(name string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(name))) {
	case "", StyleCode:
		return StyleCode, nil
	case StyleSymbol:
		return StyleSymbol, nil
	default:
		return "", fmt.Errorf("unknown currency style %q (must be code or symbol)", name)
	}
}

// Formatter renders amounts with two decimals and thousands separators
type Formatter struct {
	style Style
}

// NewFormatter creates a formatter for the given style
func NewFormatter(style Style) Formatter {
	if style != StyleSymbol {
		style = StyleCode
	}
	return Formatter{style: style}
}

// Style returns the formatter's style
func (f Formatter) Style() Style {
	return f.style
}

// Format renders amount, e.g. "USD 1,234.56" or "−USD 1.00".
// NaN renders as zero.
func (f Formatter) Format(amount float64) string {
	text, negative := f.render(amount)
	if negative {
		return minus + text
	}
	return text
}

// FormatCell renders amount for a table cell, with negatives in parentheses
func (f Formatter) FormatCell(amount float64) string {
	text, negative := f.render(amount)
	if negative {
		return "(" + text + ")"
	}
	return text
}

// FormatAbs renders the magnitude of amount
func (f Formatter) FormatAbs(amount float64) string {
	text, _ := f.render(amount)
	return text
}

func (f Formatter) render(amount float64) (string, bool) {
	if math.IsNaN(amount) {
		amount = 0
	}
	if math.IsInf(amount, 0) {
		return "∞", amount < 0
	}

	value := decimal.NewFromFloat(amount).Round(2)
	negative := value.IsNegative()
	digits := groupDigits(value, 2)

	if f.style == StyleSymbol {
		return "$" + digits, negative
	}
	return "USD " + digits, negative
}

// FormatNumber renders a bare number with the given decimals and grouping
func FormatNumber(value float64, places int32) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprint(value)
	}
	d := decimal.NewFromFloat(value).Round(places)
	text := groupDigits(d, places)
	if d.IsNegative() {
		return "-" + text
	}
	return text
}

// groupDigits renders the magnitude of d with comma-grouped integer digits
// and exactly places decimals
func groupDigits(d decimal.Decimal, places int32) string {
	abs := d.Abs()
	text := humanize.BigComma(abs.Truncate(0).BigInt())
	if places > 0 {
		fixed := abs.StringFixed(places)
		text += fixed[strings.IndexByte(fixed, '.'):]
	}
	return text
}
