package models

import "time"

// TransactionType represents the direction of a money movement.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single recorded money movement. Amount is always
// a positive magnitude; the sign is derived from Type at display time.
type Transaction struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Type          TransactionType `gorm:"not null" json:"type"`
	Amount        float64         `gorm:"type:numeric(14,2);not null" json:"amount"`
	Category      string          `gorm:"not null" json:"category"`
	Description   string          `gorm:"not null" json:"description"`
	Date          time.Time       `gorm:"type:date;not null;index" json:"date"`
	PaymentMethod string          `gorm:"not null" json:"payment_method"`
}

// SignedAmount returns the display-time signed value: expenses negate,
// income stays positive.
func (t *Transaction) SignedAmount() float64 {
	if t.Type == TransactionTypeExpense {
		return -t.Amount
	}
	return t.Amount
}
