package models

import "time"

// Budget represents a spending ceiling for a category over a date range.
// The category is a plain label matched against transaction categories by
// exact string equality; there is no foreign key between the two.
type Budget struct {
	Base
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Category    string    `gorm:"not null" json:"category"`
	BudgetLimit float64   `gorm:"column:budget_limit;type:numeric(14,2);not null" json:"budget_limit"`
	StartDate   time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null" json:"end_date"`
}
