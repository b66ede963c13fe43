package services

import (
	"testing"
	"time"

	"moneymind/internal/analytics"
	"moneymind/internal/models"
	"moneymind/internal/testutil"
)

func TestGetSummary(t *testing.T) {
	t.Run("this_month_totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(NewTransactionService(db, testCatalog()), NewBudgetService(db, testCatalog()))
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, 5000, "Other")
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 2000, "Food & Dining")

		summary, err := svc.GetSummary(user.ID, analytics.WindowThisMonth)
		testutil.AssertNoError(t, err)

		if summary.TotalIncome != 5000 || summary.TotalExpenses != 2000 {
			t.Errorf("unexpected totals: %+v", summary)
		}
		if summary.SavingsRate != 60 {
			t.Errorf("expected savings rate 60, got %v", summary.SavingsRate)
		}
	})

	t.Run("invalid_window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(NewTransactionService(db, testCatalog()), NewBudgetService(db, testCatalog()))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetSummary(user.ID, analytics.Window("forever"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetBudgetReport(t *testing.T) {
	t.Run("flags_overspent_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(NewTransactionService(db, testCatalog()), NewBudgetService(db, testCatalog()))
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestBudget(t, db, user.ID, "Food & Dining", 300)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 350, "Food & Dining")

		report, err := svc.GetBudgetReport(user.ID)
		testutil.AssertNoError(t, err)

		if len(report.OverBudget) != 1 {
			t.Fatalf("expected 1 over-budget category, got %d", len(report.OverBudget))
		}
		if report.OverBudget[0].Percentage != 116.7 {
			t.Errorf("expected 116.7 percent, got %v", report.OverBudget[0].Percentage)
		}
		if report.RemainingBudget != -50 {
			t.Errorf("expected remaining -50, got %v", report.RemainingBudget)
		}
	})

	t.Run("only_this_months_spending_counts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(NewTransactionService(db, testCatalog()), NewBudgetService(db, testCatalog()))
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestBudget(t, db, user.ID, "Shopping", 100)
		lastMonth := time.Now().AddDate(0, -1, 0)
		testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeExpense, 500, "Shopping", lastMonth)

		report, err := svc.GetBudgetReport(user.ID)
		testutil.AssertNoError(t, err)

		if report.TotalSpent != 0 {
			t.Errorf("expected no spend counted, got %v", report.TotalSpent)
		}
		if len(report.OverBudget) != 0 {
			t.Errorf("expected no over-budget flags, got %d", len(report.OverBudget))
		}
	})
}

func TestExportCSV(t *testing.T) {
	t.Run("produces_csv", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(NewTransactionService(db, testCatalog()), NewBudgetService(db, testCatalog()))
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 25, "Other")

		out, err := svc.ExportCSV(user.ID, analytics.Window30Days)
		testutil.AssertNoError(t, err)
		if len(out) == 0 {
			t.Fatal("expected CSV output")
		}
	})

	t.Run("invalid_window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(NewTransactionService(db, testCatalog()), NewBudgetService(db, testCatalog()))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.ExportCSV(user.ID, analytics.Window("yearly"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
