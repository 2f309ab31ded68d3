package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aristath/dividend-calculator/internal/modules/display"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#858392"))
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// Render formats a view as a price summary followed by the cash flow table
func Render(view display.View) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Dividend Discount Valuation"))
	b.WriteString("\n\n")

	for _, eq := range view.Equations {
		b.WriteString(renderEquation(eq))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderTable(view.Table))
	b.WriteString("\n")
	return b.String()
}

func renderEquation(eq display.Equation) string {
	color := lipgloss.Color(eq.Color)
	head := lipgloss.NewStyle().Foreground(color).Bold(true).Render(eq.Title + " (" + eq.Notation + ")")

	var b strings.Builder
	b.WriteString(head)
	b.WriteString("\n  ")
	b.WriteString(mutedStyle.Render(eq.Symbolic))
	b.WriteString("\n  ")
	b.WriteString(eq.Substituted)
	b.WriteString("\n  ")
	if eq.Valid {
		b.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(eq.Result))
		for _, term := range eq.Breakdown {
			b.WriteString("\n  ")
			b.WriteString(mutedStyle.Render(term.Amount + " (" + term.Label + ")"))
		}
	} else {
		b.WriteString(invalidStyle.Render(eq.Result + " (" + eq.Constraint + ")"))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderTable renders the cash flow table with a totals and price footer
func RenderTable(t display.Table) string {
	headers := make([]string, 0, len(t.Columns)+1)
	headers = append(headers, t.YearTitle)
	for _, c := range t.Columns {
		headers = append(headers, c.Title+" ("+c.Notation+")")
	}

	rows := make([][]string, 0, len(t.Rows)+2)
	for _, r := range t.Rows {
		rows = append(rows, append([]string{r.Label}, r.Cells...))
	}
	rows = append(rows, append([]string{t.TotalLabel}, t.Totals...))
	rows = append(rows, append([]string{t.PriceLabel}, t.Prices...))

	footerStart := len(t.Rows)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			if col == 0 {
				style = style.Bold(row >= footerStart)
				return style
			}
			style = style.Align(lipgloss.Right)
			if idx := col - 1; idx < len(t.Columns) {
				style = style.Foreground(lipgloss.Color(t.Columns[idx].Color))
			}
			if row >= footerStart {
				style = style.Bold(true)
			}
			return style
		})

	return tbl.Render()
}
