package models

import "time"

// Transaction types. There is no third category.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction represents a single entry in a user's ledger
type Transaction struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
}

// DailyTotal is a per-calendar-day aggregate of transaction amounts
type DailyTotal struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// ChartPoint is one bucket of the income/expense chart
type ChartPoint struct {
	Period  string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}
