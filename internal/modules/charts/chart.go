// Package charts builds bar chart data and keyboard view state for the
// dividend cash flow chart.
package charts

import (
	"sort"
	"strconv"

	"github.com/aristath/dividend-calculator/internal/modules/valuation"
)

// Axis titles
const (
	XAxisTitle = "Time Period"
	YAxisTitle = "Cash Flows (USD)"
)

// AriaLabel describes the chart and its keyboard controls
const AriaLabel = "Interactive bar chart showing equity cash flows over time. " +
	"Press Tab to focus, then use Left and Right arrow keys to navigate between time periods. " +
	"Press Home to go to first period, End to go to last period."

// FocusColor outlines the keyboard-focused bar group
const FocusColor = "#06005a"

var modelColors = map[valuation.Model]string{
	valuation.ModelConstant: "#3c6ae5",
	valuation.ModelGrowth:   "#15803d",
	valuation.ModelChanging: "#7a46ff",
}

// Color returns the display colour of a model
func Color(m valuation.Model) string {
	if c, ok := modelColors[m]; ok {
		return c
	}
	return "#000000"
}

// Dataset is one model's series of bars
type Dataset struct {
	Model valuation.Model `json:"model"`
	Label string          `json:"label"`
	Color string          `json:"color"`
	Data  []float64       `json:"data"`
}

// LegendEntry is one item of the chart legend
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// ChartData is everything needed to draw the cash flow chart
type ChartData struct {
	Years      []int         `json:"years"`
	Labels     []string      `json:"labels"`
	Datasets   []Dataset     `json:"datasets"`
	Legend     []LegendEntry `json:"legend"`
	XAxisTitle string        `json:"x_axis_title"`
	YAxisTitle string        `json:"y_axis_title"`
	AriaLabel  string        `json:"aria_label"`
	DataLabels bool          `json:"data_labels"` // per-bar value labels, single model only
}

// Points returns the number of positions on the year axis
func (c ChartData) Points() int {
	return len(c.Years)
}

// YearLabel returns the axis label of a year
func YearLabel(year int) string {
	if year == 0 {
		return "Initial"
	}
	return "Yr " + strconv.Itoa(year)
}

// Years returns the sorted union of years across the given results
func Years(results ...valuation.ValuationResult) []int {
	seen := make(map[int]struct{})
	for _, r := range results {
		for _, cf := range r.CashFlows {
			seen[cf.Year] = struct{}{}
		}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// BuildChart builds chart data for the selected models of a report.
// Models are shown in the given order; unknown models are skipped.
func BuildChart(report valuation.Report, models []valuation.Model) ChartData {
	results := make([]valuation.ValuationResult, 0, len(models))
	for _, m := range models {
		if r, ok := report.Result(m); ok {
			results = append(results, r)
		}
	}

	years := Years(results...)
	chart := ChartData{
		Years:      years,
		Labels:     make([]string, len(years)),
		Datasets:   make([]Dataset, 0, len(results)),
		Legend:     []LegendEntry{},
		XAxisTitle: XAxisTitle,
		YAxisTitle: YAxisTitle,
		AriaLabel:  AriaLabel,
		DataLabels: len(results) == 1,
	}

	for i, y := range years {
		chart.Labels[i] = YearLabel(y)
	}

	for _, r := range results {
		data := make([]float64, len(years))
		for i, y := range years {
			data[i] = r.FlowAt(y)
		}
		chart.Datasets = append(chart.Datasets, Dataset{
			Model: r.Model,
			Label: r.Model.Title(),
			Color: Color(r.Model),
			Data:  data,
		})
	}

	if len(results) == len(valuation.AllModels) {
		for _, d := range chart.Datasets {
			chart.Legend = append(chart.Legend, LegendEntry{Label: d.Label, Color: d.Color})
		}
	}

	return chart
}
