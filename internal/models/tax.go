package models

import "time"

// TaxEstimate is the result of a progressive tax estimation over a date range
type TaxEstimate struct {
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	Revenue           float64   `json:"revenue"`
	Expense           float64   `json:"expense"`
	Profit            float64   `json:"profit"`
	Tax               float64   `json:"tax"`
	TaxNote           string    `json:"tax_note"`
	NetIncome         float64   `json:"net_income"`
	TransactionCount  int       `json:"transaction_count"`
	DurationDays      int       `json:"duration_days"`
	AnnualizedRevenue float64   `json:"annualized_revenue"`
	IsAnnualized      bool      `json:"is_annualized"`
	AvgDailyIncome    float64   `json:"avg_daily_income"`
	AvgWeeklyIncome   float64   `json:"avg_weekly_income"`
	AvgMonthlyIncome  float64   `json:"avg_monthly_income"`
	AvgDailyExpense   float64   `json:"avg_daily_expense"`
	AvgWeeklyExpense  float64   `json:"avg_weekly_expense"`
	AvgMonthlyExpense float64   `json:"avg_monthly_expense"`
}
