package services

import (
	"context"
	"time"

	"moneymind/internal/analytics"
	"moneymind/internal/models"
	"moneymind/internal/pagination"
	"moneymind/internal/receipt"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	Type      *models.TransactionType
	Category  *string
	MinAmount *float64
	MaxAmount *float64
}

// TransactionInput carries the writable fields of a transaction.
type TransactionInput struct {
	Type          models.TransactionType
	Amount        float64
	Category      string
	Description   string
	Date          time.Time
	PaymentMethod string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetAllUserTransactions(userID string) ([]models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// BudgetInput carries the writable fields of a budget.
type BudgetInput struct {
	Category    string
	BudgetLimit float64
	StartDate   time.Time
	EndDate     time.Time
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID string, input BudgetInput) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetAllUserBudgets(userID string) ([]models.Budget, error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID string, input BudgetInput) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
}

// AnalyticsServicer defines the contract for reporting over a user's data.
type AnalyticsServicer interface {
	GetSummary(userID string, window analytics.Window) (*analytics.Summary, error)
	GetCategoryBreakdown(userID string, window analytics.Window) ([]analytics.CategoryTotal, error)
	GetMonthlyTrend(userID string, months int) ([]analytics.MonthlyPoint, error)
	GetWeeklySpending(userID string) ([]analytics.WeeklyTotal, error)
	GetBudgetReport(userID string) (*analytics.BudgetReport, error)
	ExportCSV(userID string, window analytics.Window) ([]byte, error)
}

// ReceiptServicer defines the contract for the receipt intake flow.
type ReceiptServicer interface {
	ProcessReceipt(ctx context.Context, userID string, file receipt.File) (*receipt.Draft, error)
	CommitReceipt(ctx context.Context, userID string, draft receipt.Draft) (*models.Transaction, error)
}

// ChatServicer defines the contract for the budgeting assistant.
type ChatServicer interface {
	Chat(ctx context.Context, userID, message string) (string, error)
}

// AuditServicer defines the contract for recording audit events.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
