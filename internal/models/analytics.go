package models

// IncomeExpenseStats represents all-time income and expense statistics
// for the dashboard financial-health view
type IncomeExpenseStats struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Margin  float64 `json:"margin"` // (Income - Expense) / Income * 100, 0 when income is 0
}
