package integration

import (
	"net/http"
	"testing"
	"time"
)

func TestTransactionFlow_CreateListUpdateDelete(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "tx@test.com", "password123")

	today := time.Now().Format("2006-01-02")

	// Create
	txID := app.createTransaction(t, token, "expense", 42.50, "Food & Dining", today)

	// List contains the transaction
	rec := app.request("GET", "/api/v1/transactions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	page := parseJSON(t, rec)
	items := page["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(items))
	}
	if page["total_items"].(float64) != 1 {
		t.Errorf("expected total_items 1, got %v", page["total_items"])
	}

	// Get by ID
	rec = app.request("GET", "/api/v1/transactions/"+txID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get failed: %d %s", rec.Code, rec.Body.String())
	}
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if tx["amount"].(float64) != 42.50 {
		t.Errorf("expected amount 42.50, got %v", tx["amount"])
	}

	// Update
	rec = app.request("PUT", "/api/v1/transactions/"+txID,
		`{"type":"expense","amount":50,"category":"Shopping","payment_method":"Credit Card","date":"`+today+`"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if updated["category"] != "Shopping" {
		t.Errorf("expected category Shopping, got %v", updated["category"])
	}

	// Delete
	rec = app.request("DELETE", "/api/v1/transactions/"+txID, "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	// Get after delete returns 404
	rec = app.request("GET", "/api/v1/transactions/"+txID, "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestTransactionFlow_RejectsUnknownCategory(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "cat@test.com", "password123")

	rec := app.request("POST", "/api/v1/transactions",
		`{"type":"expense","amount":10,"category":"Gambling","payment_method":"Cash"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "UNKNOWN_CATEGORY" {
		t.Errorf("expected UNKNOWN_CATEGORY, got %v", code)
	}
}

func TestTransactionFlow_RejectsUnknownPaymentMethod(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "pay@test.com", "password123")

	rec := app.request("POST", "/api/v1/transactions",
		`{"type":"expense","amount":10,"category":"Other","payment_method":"Barter"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "UNKNOWN_PAYMENT_METHOD" {
		t.Errorf("expected UNKNOWN_PAYMENT_METHOD, got %v", code)
	}
}

func TestTransactionFlow_FilterByType(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "filter@test.com", "password123")

	today := time.Now().Format("2006-01-02")
	app.createTransaction(t, token, "expense", 25, "Food & Dining", today)
	app.createTransaction(t, token, "income", 1000, "Other", today)

	rec := app.request("GET", "/api/v1/transactions?type=income", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	items := parseJSON(t, rec)["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 income transaction, got %d", len(items))
	}
	tx := items[0].(map[string]interface{})
	if tx["type"] != "income" {
		t.Errorf("expected income, got %v", tx["type"])
	}
}

func TestTransactionFlow_UsersAreIsolated(t *testing.T) {
	app := setupApp(t)
	tokenA, _, _ := app.registerUser(t, "a@test.com", "password123")
	tokenB, _, _ := app.registerUser(t, "b@test.com", "password123")

	today := time.Now().Format("2006-01-02")
	txID := app.createTransaction(t, tokenA, "expense", 15, "Other", today)

	// User B cannot see or delete user A's transaction.
	rec := app.request("GET", "/api/v1/transactions/"+txID, "", tokenB)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other user's transaction, got %d", rec.Code)
	}

	rec = app.request("DELETE", "/api/v1/transactions/"+txID, "", tokenB)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting other user's transaction, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/transactions", "", tokenB)
	items := parseJSON(t, rec)["items"].([]interface{})
	if len(items) != 0 {
		t.Errorf("expected empty list for user B, got %d items", len(items))
	}
}
