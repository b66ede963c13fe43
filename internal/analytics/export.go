package analytics

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"moneymind/internal/models"
)

// ExportCSV renders an analytics report as CSV: headline metrics, then the
// monthly trend, then the category breakdown as labelled sections.
func ExportCSV(txs []models.Transaction, w Window, now time.Time) ([]byte, error) {
	windowed := FilterByWindow(txs, w, now)
	summary := Summarize(windowed)
	breakdown := CategoryBreakdown(windowed)
	trend := MonthlyTrend(txs, 6, now)

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	rows := [][]string{
		{"Metric", "Value"},
		{"Total Income", formatAmount(summary.TotalIncome)},
		{"Total Expenses", formatAmount(summary.TotalExpenses)},
		{"Net Savings", formatAmount(summary.NetSavings)},
		{"Savings Rate", formatAmount(summary.SavingsRate) + "%"},
		{},
		{"Monthly Trend"},
		{"Month", "Income", "Expenses", "Savings"},
	}
	for _, p := range trend {
		rows = append(rows, []string{
			p.Month,
			formatAmount(p.Income),
			formatAmount(p.Expenses),
			formatAmount(p.Savings),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"Category Breakdown"},
		[]string{"Category", "Amount"},
	)
	for _, ct := range breakdown {
		rows = append(rows, []string{ct.Category, formatAmount(ct.Total)})
	}

	if err := cw.WriteAll(rows); err != nil {
		return nil, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
