package integration

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestAnalyticsFlow_SummaryAndBreakdown(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "analytics@test.com", "password123")

	today := time.Now().Format("2006-01-02")
	app.createTransaction(t, token, "income", 1000, "Other", today)
	app.createTransaction(t, token, "expense", 250, "Food & Dining", today)
	app.createTransaction(t, token, "expense", 150, "Shopping", today)

	// Summary for this month
	rec := app.request("GET", "/api/v1/analytics/summary?window=thismonth", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary failed: %d %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["total_income"].(float64) != 1000 {
		t.Errorf("expected income 1000, got %v", summary["total_income"])
	}
	if summary["total_expenses"].(float64) != 400 {
		t.Errorf("expected expenses 400, got %v", summary["total_expenses"])
	}
	if summary["net_savings"].(float64) != 600 {
		t.Errorf("expected savings 600, got %v", summary["net_savings"])
	}

	// Breakdown is expense-only, ordered by total descending
	rec = app.request("GET", "/api/v1/analytics/categories", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("breakdown failed: %d %s", rec.Code, rec.Body.String())
	}
	categories := parseJSON(t, rec)["categories"].([]interface{})
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	first := categories[0].(map[string]interface{})
	if first["category"] != "Food & Dining" || first["total"].(float64) != 250 {
		t.Errorf("unexpected first category: %v", first)
	}
}

func TestAnalyticsFlow_RejectsUnknownWindow(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "window@test.com", "password123")

	rec := app.request("GET", "/api/v1/analytics/summary?window=90days", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown window, got %d", rec.Code)
	}
}

func TestAnalyticsFlow_MonthlyTrend(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "trend@test.com", "password123")

	today := time.Now().Format("2006-01-02")
	app.createTransaction(t, token, "expense", 100, "Other", today)

	rec := app.request("GET", "/api/v1/analytics/trend?months=3", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("trend failed: %d %s", rec.Code, rec.Body.String())
	}
	trend := parseJSON(t, rec)["trend"].([]interface{})
	if len(trend) != 3 {
		t.Fatalf("expected 3 months, got %d", len(trend))
	}
	// Current month is last and carries the expense.
	last := trend[2].(map[string]interface{})
	if last["expenses"].(float64) != 100 {
		t.Errorf("expected 100 expenses in current month, got %v", last["expenses"])
	}
	if last["month"] != time.Now().Format("Jan 2006") {
		t.Errorf("expected month label %q, got %v", time.Now().Format("Jan 2006"), last["month"])
	}
}

func TestAnalyticsFlow_ExportCSV(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "export@test.com", "password123")

	today := time.Now().Format("2006-01-02")
	app.createTransaction(t, token, "expense", 75, "Healthcare", today)

	rec := app.request("GET", "/api/v1/analytics/export?window=thismonth", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("export failed: %d %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Errorf("expected text/csv content type, got %s", got)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Healthcare") {
		t.Errorf("expected Healthcare row in CSV, got:\n%s", body)
	}
	if !strings.Contains(body, "75.00") {
		t.Errorf("expected 75.00 in CSV, got:\n%s", body)
	}
}
