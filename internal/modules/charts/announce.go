package charts

import (
	"strconv"
	"strings"

	"github.com/aristath/dividend-calculator/internal/modules/currency"
	"github.com/aristath/dividend-calculator/internal/modules/valuation"
)

var announceNames = map[valuation.Model]string{
	valuation.ModelConstant: "Constant",
	valuation.ModelGrowth:   "Growth",
	valuation.ModelChanging: "Two-stage",
}

// Announce returns the screen reader text for the data point at index.
// With several datasets every model's amount is read out; with one only the amount.
func Announce(chart ChartData, index int, f currency.Formatter) string {
	if index < 0 || index >= chart.Points() {
		return ""
	}

	year := chart.Years[index]
	label := "Year " + strconv.Itoa(year)
	if year == 0 {
		label = "Initial investment"
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteString(". ")

	if len(chart.Datasets) == 1 {
		b.WriteString(f.FormatAbs(chart.Datasets[0].Data[index]))
		return b.String()
	}

	for i, d := range chart.Datasets {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(announceNames[d.Model])
		b.WriteString(": ")
		b.WriteString(f.FormatAbs(d.Data[index]))
		b.WriteString(".")
	}
	return b.String()
}
