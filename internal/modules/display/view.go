package display

import (
	"github.com/aristath/dividend-calculator/internal/modules/charts"
	"github.com/aristath/dividend-calculator/internal/modules/currency"
	"github.com/aristath/dividend-calculator/internal/modules/valuation"
)

// View is a fully rendered report: prices, chart, table and equations
type View struct {
	Report    valuation.ReportResponse `json:"report"`
	Selection string                   `json:"selection"`
	Chart     charts.ChartData         `json:"chart"`
	Table     Table                    `json:"table"`
	Equations []Equation               `json:"equations"`
}

// BuildView renders a report for the given selection ("all" or a model name)
func BuildView(report valuation.Report, selection string, f currency.Formatter) (View, error) {
	models, err := valuation.ParseSelection(selection)
	if err != nil {
		return View{}, err
	}
	if selection == "" {
		selection = valuation.SelectionAll
	}

	return View{
		Report:    valuation.NewReportResponse(report),
		Selection: selection,
		Chart:     charts.BuildChart(report, models),
		Table:     BuildTable(report, models, f),
		Equations: BuildEquations(report, f),
	}, nil
}
