package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"moneymind/internal/chat"
	"moneymind/internal/handlers"
	"moneymind/internal/logger"
	"moneymind/internal/middleware"
	"moneymind/internal/models"
	"moneymind/internal/services"
	"moneymind/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB         *gorm.DB
	Router     *gin.Engine
	Recognizer *stubRecognizer
	Assistant  *stubAssistant
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// stubRecognizer stands in for the Gemini OCR client.
type stubRecognizer struct {
	text string
	err  error
}

func (s *stubRecognizer) RecognizeText(_ context.Context, _ string, _ []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

// stubAssistant stands in for the Gemini chat client. It records the snapshot
// it was called with so tests can assert on the embedded budget figures.
type stubAssistant struct {
	reply        string
	err          error
	lastSnapshot chat.Snapshot
}

func (s *stubAssistant) Reply(_ context.Context, _ string, snapshot chat.Snapshot) (string, error) {
	s.lastSnapshot = snapshot
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Transaction{},
		&models.Budget{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	catalog := services.Catalog{
		Categories: []string{
			"Food & Dining", "Transportation", "Shopping",
			"Entertainment", "Bills & Utilities", "Healthcare", "Other",
		},
		PaymentMethods: []string{"Cash", "Credit Card", "Debit Card", "UPI", "Bank Transfer"},
	}

	recognizer := &stubRecognizer{text: "Coffee Shop\nTotal 4.50"}
	assistant := &stubAssistant{reply: "Looking good."}

	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	transactionService := services.NewTransactionService(db, catalog)
	budgetService := services.NewBudgetService(db, catalog)
	analyticsService := services.NewAnalyticsService(transactionService, budgetService)
	receiptService := services.NewReceiptService(recognizer, transactionService, catalog, 10<<20)
	chatService := services.NewChatService(assistant, analyticsService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	receiptHandler := handlers.NewReceiptHandler(receiptService, auditService)
	chatHandler := handlers.NewChatHandler(chatService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/:id", transactionHandler.Get)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.Create)
	budgets.GET("", budgetHandler.List)
	budgets.GET("/:id", budgetHandler.Get)
	budgets.PUT("/:id", budgetHandler.Update)
	budgets.DELETE("/:id", budgetHandler.Delete)

	analyticsRoutes := protected.Group("/analytics")
	analyticsRoutes.GET("/summary", analyticsHandler.GetSummary)
	analyticsRoutes.GET("/categories", analyticsHandler.GetCategoryBreakdown)
	analyticsRoutes.GET("/trend", analyticsHandler.GetMonthlyTrend)
	analyticsRoutes.GET("/weekly", analyticsHandler.GetWeeklySpending)
	analyticsRoutes.GET("/budgets", analyticsHandler.GetBudgetReport)
	analyticsRoutes.GET("/export", analyticsHandler.Export)

	receipts := protected.Group("/receipts")
	receipts.POST("/ocr", receiptHandler.Upload)
	receipts.POST("/commit", receiptHandler.Commit)

	protected.POST("/chat", chatHandler.Send)

	return &testApp{DB: db, Router: router, Recognizer: recognizer, Assistant: assistant}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode extracts the error code from an error response body.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error payload, got: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createTransaction creates a transaction over the API and returns its ID.
func (app *testApp) createTransaction(t *testing.T, token, txType string, amount float64, category, date string) string {
	t.Helper()
	body := fmt.Sprintf(`{"type":%q,"amount":%v,"category":%q,"payment_method":"Cash","date":%q}`,
		txType, amount, category, date)
	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	tx := result["transaction"].(map[string]interface{})
	return tx["id"].(string)
}
