package display

import (
	"strconv"
	"strings"

	"github.com/aristath/dividend-calculator/internal/modules/charts"
	"github.com/aristath/dividend-calculator/internal/modules/currency"
	"github.com/aristath/dividend-calculator/internal/modules/valuation"
)

// Table captions and footer labels
const (
	TableCaption    = "Dividend cash flow schedule"
	TotalLabel      = "Total Received"
	PriceLabel      = "Stock Price"
	InvalidText     = "Invalid"
	yearColumnTitle = "Year"
)

// Column is one model column of the table
type Column struct {
	Model    valuation.Model `json:"model"`
	Title    string          `json:"title"`
	Notation string          `json:"notation"`
	Color    string          `json:"color"`
}

// Row is one year of the cash flow schedule
type Row struct {
	Year   int       `json:"year"`
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
	Cells  []string  `json:"cells"`
}

// Table is the cash flow schedule of the shown models
type Table struct {
	Caption     string   `json:"caption"`
	YearTitle   string   `json:"year_title"`
	Columns     []Column `json:"columns"`
	Rows        []Row    `json:"rows"`
	TotalLabel  string   `json:"total_label"`
	Totals      []string `json:"totals"`
	PriceLabel  string   `json:"price_label"`
	Prices      []string `json:"prices"`
	ValidPrices []bool   `json:"valid_prices"`
}

// RowLabel returns the row heading of a year
func RowLabel(year int) string {
	if year == 0 {
		return "Initial"
	}
	return "Year " + strconv.Itoa(year)
}

// BuildTable builds the cash flow table for the selected models of a report.
// Rows span the union of the models' years; a missing flow shows as zero.
func BuildTable(report valuation.Report, models []valuation.Model, f currency.Formatter) Table {
	results := make([]valuation.ValuationResult, 0, len(models))
	for _, m := range models {
		if r, ok := report.Result(m); ok {
			results = append(results, r)
		}
	}

	table := Table{
		Caption:     TableCaption,
		YearTitle:   yearColumnTitle,
		Columns:     make([]Column, len(results)),
		Rows:        []Row{},
		TotalLabel:  TotalLabel,
		Totals:      make([]string, len(results)),
		Prices:      make([]string, len(results)),
		ValidPrices: make([]bool, len(results)),
	}

	notations := make([]string, len(results))
	for i, r := range results {
		notations[i] = Notation(r.Model)
		table.Columns[i] = Column{
			Model:    r.Model,
			Title:    r.Model.Title(),
			Notation: notations[i],
			Color:    charts.Color(r.Model),
		}
	}

	for _, year := range charts.Years(results...) {
		row := Row{
			Year:   year,
			Label:  RowLabel(year),
			Values: make([]float64, len(results)),
			Cells:  make([]string, len(results)),
		}
		for i, r := range results {
			row.Values[i] = r.FlowAt(year)
			row.Cells[i] = f.FormatCell(row.Values[i])
		}
		table.Rows = append(table.Rows, row)
	}

	for i, r := range results {
		table.Totals[i] = f.Format(TotalReceived(r))
		table.ValidPrices[i] = r.Valid()
		if r.Valid() {
			table.Prices[i] = f.Format(r.Price)
		} else {
			table.Prices[i] = InvalidText
		}
	}

	table.PriceLabel = PriceLabel
	if len(notations) > 0 {
		table.PriceLabel += " (" + strings.Join(notations, " / ") + ")"
	}

	return table
}

// TotalReceived sums the positive flows of a schedule
func TotalReceived(r valuation.ValuationResult) float64 {
	var total float64
	for _, cf := range r.CashFlows {
		if cf.Dividend > 0 {
			total += cf.Dividend
		}
	}
	return total
}
