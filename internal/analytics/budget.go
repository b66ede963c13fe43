package analytics

import (
	"math"

	"moneymind/internal/models"
)

// BudgetStatus pairs a budget with the amount spent against it.
type BudgetStatus struct {
	Budget      models.Budget `json:"budget"`
	SpentAmount float64       `json:"spent_amount"`
	Percentage  float64       `json:"percentage"`
}

// BudgetReport summarizes spending against all of a user's budgets.
type BudgetReport struct {
	TotalBudget          float64        `json:"total_budget"`
	TotalSpent           float64        `json:"total_spent"`
	RemainingBudget      float64        `json:"remaining_budget"`
	BudgetUsedPercentage float64        `json:"budget_used_percentage"`
	Categories           []BudgetStatus `json:"categories"`
	OverBudget           []BudgetStatus `json:"over_budget"`
	NearLimit            []BudgetStatus `json:"near_limit"`
}

// EvaluateBudgets computes usage for each budget against the category
// breakdown. A budget is over when usage exceeds 100 percent and near its
// limit when usage is between 80 and 100 percent inclusive; the two sets
// never overlap. A budget with a non-positive limit reports zero usage
// and is never flagged.
func EvaluateBudgets(budgets []models.Budget, breakdown []CategoryTotal) BudgetReport {
	spent := make(map[string]float64, len(breakdown))
	for _, ct := range breakdown {
		spent[ct.Category] = ct.Total
	}

	report := BudgetReport{
		Categories: make([]BudgetStatus, 0, len(budgets)),
		OverBudget: []BudgetStatus{},
		NearLimit:  []BudgetStatus{},
	}

	for _, b := range budgets {
		status := BudgetStatus{
			Budget:      b,
			SpentAmount: spent[b.Category],
		}

		var pct float64
		if b.BudgetLimit > 0 {
			pct = status.SpentAmount / b.BudgetLimit * 100
		}
		status.Percentage = roundTenth(pct)

		report.TotalBudget += b.BudgetLimit
		report.TotalSpent += status.SpentAmount
		report.Categories = append(report.Categories, status)

		// Classify on the raw percentage so rounding never moves a
		// budget across the 100 percent boundary.
		switch {
		case pct > 100:
			report.OverBudget = append(report.OverBudget, status)
		case pct >= 80:
			report.NearLimit = append(report.NearLimit, status)
		}
	}

	report.RemainingBudget = report.TotalBudget - report.TotalSpent
	if report.TotalBudget > 0 {
		report.BudgetUsedPercentage = roundTenth(report.TotalSpent / report.TotalBudget * 100)
	}
	return report
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
