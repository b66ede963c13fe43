package analytics

import (
	"strconv"
	"time"

	"moneymind/internal/models"
)

// MonthlyPoint holds income and expense totals for one calendar month.
type MonthlyPoint struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

// MonthlyTrend computes per-month totals for the monthCount most recent
// calendar months, current month included, ordered oldest first. Months
// without transactions appear with zero totals.
func MonthlyTrend(txs []models.Transaction, monthCount int, now time.Time) []MonthlyPoint {
	if monthCount < 1 {
		return nil
	}

	// Anchor at the first of the current month: subtracting months from a
	// day past 28 can normalize into the wrong month.
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	points := make([]MonthlyPoint, monthCount)
	for i := 0; i < monthCount; i++ {
		m := first.AddDate(0, -(monthCount - 1 - i), 0)
		points[i].Month = m.Format("Jan 2006")

		year, month := m.Year(), m.Month()
		for _, tx := range txs {
			if tx.Date.Year() != year || tx.Date.Month() != month {
				continue
			}
			switch tx.Type {
			case models.TransactionTypeIncome:
				points[i].Income += tx.Amount
			case models.TransactionTypeExpense:
				points[i].Expenses += tx.Amount
			}
		}
		points[i].Savings = points[i].Income - points[i].Expenses
	}
	return points
}

// WeeklyTotal holds the expense total for one week of the current month.
type WeeklyTotal struct {
	Week  string  `json:"week"`
	Total float64 `json:"total"`
}

// WeeklySpending buckets the current month's expenses into consecutive
// seven-day windows starting from the first of the month. The final window
// is truncated at the end of the month.
func WeeklySpending(txs []models.Transaction, now time.Time) []WeeklyTotal {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)
	daysInMonth := int(nextMonth.Sub(monthStart).Hours() / 24)

	weekCount := (daysInMonth + 6) / 7
	out := make([]WeeklyTotal, weekCount)
	for i := range out {
		out[i].Week = "Week " + strconv.Itoa(i+1)
	}

	for _, tx := range txs {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		if tx.Date.Year() != now.Year() || tx.Date.Month() != now.Month() {
			continue
		}
		week := (tx.Date.Day() - 1) / 7
		if week >= weekCount {
			week = weekCount - 1
		}
		out[week].Total += tx.Amount
	}
	return out
}
