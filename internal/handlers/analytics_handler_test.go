package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"moneymind/internal/analytics"
	"moneymind/internal/services"
)

// --- mock analytics service ---

type mockAnalyticsService struct {
	getSummaryFn           func(userID string, window analytics.Window) (*analytics.Summary, error)
	getCategoryBreakdownFn func(userID string, window analytics.Window) ([]analytics.CategoryTotal, error)
	getMonthlyTrendFn      func(userID string, months int) ([]analytics.MonthlyPoint, error)
	getWeeklySpendingFn    func(userID string) ([]analytics.WeeklyTotal, error)
	getBudgetReportFn      func(userID string) (*analytics.BudgetReport, error)
	exportCSVFn            func(userID string, window analytics.Window) ([]byte, error)
}

func (m *mockAnalyticsService) GetSummary(userID string, window analytics.Window) (*analytics.Summary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(userID, window)
	}
	return &analytics.Summary{}, nil
}

func (m *mockAnalyticsService) GetCategoryBreakdown(userID string, window analytics.Window) ([]analytics.CategoryTotal, error) {
	if m.getCategoryBreakdownFn != nil {
		return m.getCategoryBreakdownFn(userID, window)
	}
	return nil, nil
}

func (m *mockAnalyticsService) GetMonthlyTrend(userID string, months int) ([]analytics.MonthlyPoint, error) {
	if m.getMonthlyTrendFn != nil {
		return m.getMonthlyTrendFn(userID, months)
	}
	return nil, nil
}

func (m *mockAnalyticsService) GetWeeklySpending(userID string) ([]analytics.WeeklyTotal, error) {
	if m.getWeeklySpendingFn != nil {
		return m.getWeeklySpendingFn(userID)
	}
	return nil, nil
}

func (m *mockAnalyticsService) GetBudgetReport(userID string) (*analytics.BudgetReport, error) {
	if m.getBudgetReportFn != nil {
		return m.getBudgetReportFn(userID)
	}
	return &analytics.BudgetReport{}, nil
}

func (m *mockAnalyticsService) ExportCSV(userID string, window analytics.Window) ([]byte, error) {
	if m.exportCSVFn != nil {
		return m.exportCSVFn(userID, window)
	}
	return []byte("Metric,Value\n"), nil
}

var _ services.AnalyticsServicer = (*mockAnalyticsService)(nil)

func setupAnalyticsRouter(handler *AnalyticsHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID("user-1"))
	auth.GET("/analytics/summary", handler.GetSummary)
	auth.GET("/analytics/categories", handler.GetCategoryBreakdown)
	auth.GET("/analytics/trend", handler.GetMonthlyTrend)
	auth.GET("/analytics/weekly", handler.GetWeeklySpending)
	auth.GET("/analytics/budgets", handler.GetBudgetReport)
	auth.GET("/analytics/export", handler.Export)
	return r
}

func TestAnalyticsHandler_GetSummary(t *testing.T) {
	t.Run("defaults to thismonth", func(t *testing.T) {
		var gotWindow analytics.Window
		svc := &mockAnalyticsService{
			getSummaryFn: func(_ string, window analytics.Window) (*analytics.Summary, error) {
				gotWindow = window
				return &analytics.Summary{TotalIncome: 100}, nil
			},
		}
		handler := NewAnalyticsHandler(svc)
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, http.MethodGet, "/analytics/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotWindow != analytics.WindowThisMonth {
			t.Errorf("expected thismonth default, got %s", gotWindow)
		}
	})

	t.Run("rejects unknown window", func(t *testing.T) {
		handler := NewAnalyticsHandler(&mockAnalyticsService{})
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, http.MethodGet, "/analytics/summary?window=90days", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAnalyticsHandler_Export(t *testing.T) {
	t.Run("serves csv attachment", func(t *testing.T) {
		handler := NewAnalyticsHandler(&mockAnalyticsService{})
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, http.MethodGet, "/analytics/export?window=30days", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
			t.Errorf("expected text/csv, got %s", got)
		}
		if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "attachment") {
			t.Errorf("expected attachment disposition, got %s", got)
		}
	})
}

func TestAnalyticsHandler_GetBudgetReport(t *testing.T) {
	t.Run("returns the report", func(t *testing.T) {
		svc := &mockAnalyticsService{
			getBudgetReportFn: func(_ string) (*analytics.BudgetReport, error) {
				return &analytics.BudgetReport{TotalBudget: 500, TotalSpent: 350, RemainingBudget: 150}, nil
			},
		}
		handler := NewAnalyticsHandler(svc)
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, http.MethodGet, "/analytics/budgets", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["total_budget"] != 500.0 || result["remaining_budget"] != 150.0 {
			t.Errorf("unexpected report payload: %v", result)
		}
	})
}
