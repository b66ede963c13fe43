package analytics

import (
	"math"
	"sort"

	"moneymind/internal/models"
)

// Summary holds income and expense totals for a set of transactions.
type Summary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetSavings    float64 `json:"net_savings"`
	SavingsRate   float64 `json:"savings_rate"`
}

// Summarize computes income and expense totals over the given transactions.
// SavingsRate is net savings as a percentage of income, or zero when there
// is no income.
func Summarize(txs []models.Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionTypeIncome:
			s.TotalIncome += tx.Amount
		case models.TransactionTypeExpense:
			s.TotalExpenses += tx.Amount
		}
	}
	s.NetSavings = s.TotalIncome - s.TotalExpenses
	if s.TotalIncome > 0 {
		s.SavingsRate = s.NetSavings / s.TotalIncome * 100
	}
	return s
}

// CategoryTotal is the spend total for a single expense category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// CategoryBreakdown sums expense transactions by exact category label.
// Totals are rounded to whole units; categories with a zero rounded total
// are omitted. Results are ordered by descending total, ties broken by
// ascending category label.
func CategoryBreakdown(txs []models.Transaction) []CategoryTotal {
	sums := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		sums[tx.Category] += tx.Amount
	}

	out := make([]CategoryTotal, 0, len(sums))
	for category, total := range sums {
		rounded := math.Round(total)
		if rounded == 0 {
			continue
		}
		out = append(out, CategoryTotal{Category: category, Total: rounded})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}
