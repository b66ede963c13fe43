package services

import (
	"time"

	"moneymind/internal/analytics"
	apperrors "moneymind/internal/errors"
	"moneymind/internal/models"
)

// defaultTrendMonths is how many months the trend endpoint reports when the
// caller does not say otherwise.
const defaultTrendMonths = 6

// analyticsService computes reports by fetching a user's data and delegating
// to the pure analytics package.
type analyticsService struct {
	transactions TransactionServicer
	budgets      BudgetServicer
	now          func() time.Time
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(transactions TransactionServicer, budgets BudgetServicer) AnalyticsServicer {
	return &analyticsService{
		transactions: transactions,
		budgets:      budgets,
		now:          time.Now,
	}
}

// GetSummary computes income and expense totals over the window.
func (s *analyticsService) GetSummary(userID string, window analytics.Window) (*analytics.Summary, error) {
	txs, err := s.windowed(userID, window)
	if err != nil {
		return nil, err
	}
	summary := analytics.Summarize(txs)
	return &summary, nil
}

// GetCategoryBreakdown computes per-category expense totals over the window.
func (s *analyticsService) GetCategoryBreakdown(userID string, window analytics.Window) ([]analytics.CategoryTotal, error) {
	txs, err := s.windowed(userID, window)
	if err != nil {
		return nil, err
	}
	return analytics.CategoryBreakdown(txs), nil
}

// GetMonthlyTrend computes per-month totals for the most recent months.
func (s *analyticsService) GetMonthlyTrend(userID string, months int) ([]analytics.MonthlyPoint, error) {
	if months < 1 {
		months = defaultTrendMonths
	}
	txs, err := s.transactions.GetAllUserTransactions(userID)
	if err != nil {
		return nil, err
	}
	return analytics.MonthlyTrend(txs, months, s.now()), nil
}

// GetWeeklySpending buckets the current month's expenses into weeks.
func (s *analyticsService) GetWeeklySpending(userID string) ([]analytics.WeeklyTotal, error) {
	txs, err := s.transactions.GetAllUserTransactions(userID)
	if err != nil {
		return nil, err
	}
	return analytics.WeeklySpending(txs, s.now()), nil
}

// GetBudgetReport evaluates all of the user's budgets against this month's
// spending.
func (s *analyticsService) GetBudgetReport(userID string) (*analytics.BudgetReport, error) {
	budgets, err := s.budgets.GetAllUserBudgets(userID)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.GetCategoryBreakdown(userID, analytics.WindowThisMonth)
	if err != nil {
		return nil, err
	}
	report := analytics.EvaluateBudgets(budgets, breakdown)
	return &report, nil
}

// ExportCSV renders the user's analytics for the window as CSV.
func (s *analyticsService) ExportCSV(userID string, window analytics.Window) ([]byte, error) {
	if !window.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown analytics window")
	}
	txs, err := s.transactions.GetAllUserTransactions(userID)
	if err != nil {
		return nil, err
	}
	out, err := analytics.ExportCSV(txs, window, s.now())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return out, nil
}

func (s *analyticsService) windowed(userID string, window analytics.Window) ([]models.Transaction, error) {
	if !window.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown analytics window")
	}
	txs, err := s.transactions.GetAllUserTransactions(userID)
	if err != nil {
		return nil, err
	}
	return analytics.FilterByWindow(txs, window, s.now()), nil
}
