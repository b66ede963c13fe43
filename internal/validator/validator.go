package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"moneymind/internal/analytics"
	"moneymind/internal/models"
)

// Register installs custom validators on Gin's binding validator engine.
// Call once at startup before serving requests.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("transaction_type", validateTransactionType)
	v.RegisterValidation("analytics_window", validateAnalyticsWindow)
}

// validateTransactionType accepts only the known transaction types.
func validateTransactionType(fl validator.FieldLevel) bool {
	switch models.TransactionType(fl.Field().String()) {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
		return true
	}
	return false
}

// validateAnalyticsWindow accepts only the supported analytics time windows.
func validateAnalyticsWindow(fl validator.FieldLevel) bool {
	return analytics.Window(fl.Field().String()).Valid()
}
