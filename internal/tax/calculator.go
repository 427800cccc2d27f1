package tax

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/usahaku/scoring-service/internal/models"
)

// Ledger is the calculator's read-only view of a user's transactions
type Ledger interface {
	// RangeSummary returns income, expense and transaction count over the
	// inclusive date range [start, end]
	RangeSummary(userID int64, start, end time.Time) (income, expense float64, count int, err error)
	// DateExtent returns the user's earliest and latest transaction dates;
	// ok is false for an empty ledger
	DateExtent(userID int64) (first, last time.Time, ok bool, err error)
}

// Indonesian UMKM-style progressive brackets. The regime is chosen on
// annualized revenue; the tax amount is computed from actual figures.
const (
	umkmRevenueCap     = 4_800_000_000.0
	standardRevenueCap = 50_000_000_000.0
	umkmFinalRate      = 0.005
	reducedProfitRate  = 0.11
	standardProfitRate = 0.22
	daysPerYear        = 365
	annualizationFloor = 365 // windows shorter than this get projected
)

// Bracket descriptions carried on the estimate
const (
	NoteUMKM     = "Final 0.5% of revenue (UMKM)"
	NoteSplit    = "11% on profit apportioned to the first 4.8B of annualized revenue, 22% on the remainder"
	NoteStandard = "Standard 22% rate"
)

// Calculator estimates progressive tax over a ledger date range
type Calculator struct {
	ledger Ledger
	log    *logrus.Logger
}

// NewCalculator initializes a new tax calculator
func NewCalculator(ledger Ledger, log *logrus.Logger) *Calculator {
	return &Calculator{ledger: ledger, log: log}
}

// Estimate computes the tax estimate for [start, end]. Nil bounds resolve to
// the user's earliest/latest transaction dates. An end before start is a
// validation error; an empty ledger yields a defined zero estimate.
func (c *Calculator) Estimate(userID int64, start, end *time.Time) (*models.TaxEstimate, error) {
	first, last, ok, err := c.ledger.DateExtent(userID)
	if err != nil {
		return nil, models.DataAccess(err)
	}

	var from, to time.Time
	switch {
	case start != nil:
		from = truncateToDay(*start)
	case ok:
		from = truncateToDay(first)
	}
	switch {
	case end != nil:
		to = truncateToDay(*end)
	case ok:
		to = truncateToDay(last)
	}
	if start != nil && end != nil && to.Before(from) {
		return nil, models.Validationf("end_date %s is before start_date %s", to.Format("2006-01-02"), from.Format("2006-01-02"))
	}
	if from.IsZero() || to.IsZero() || to.Before(from) {
		// Empty ledger with at most one explicit bound
		return &models.TaxEstimate{TaxNote: NoteUMKM, DurationDays: 1}, nil
	}

	income, expense, count, err := c.ledger.RangeSummary(userID, from, to)
	if err != nil {
		return nil, models.DataAccess(err)
	}

	durationDays := int(to.Sub(from).Hours()/24) + 1
	if durationDays < 1 {
		durationDays = 1
	}
	weeks := max(durationDays/7, 1)
	months := max(durationDays/30, 1)

	annualized := income
	isAnnualized := false
	if durationDays < annualizationFloor {
		annualized = income / float64(durationDays) * daysPerYear
		isAnnualized = true
	}

	profit := income - expense
	tax, note := bracketTax(annualized, income, profit)

	est := &models.TaxEstimate{
		StartDate:         from,
		EndDate:           to,
		Revenue:           round2(income),
		Expense:           round2(expense),
		Profit:            round2(profit),
		Tax:               round2(tax),
		TaxNote:           note,
		NetIncome:         round2(profit - tax),
		TransactionCount:  count,
		DurationDays:      durationDays,
		AnnualizedRevenue: round2(annualized),
		IsAnnualized:      isAnnualized,
		AvgDailyIncome:    round2(income / float64(durationDays)),
		AvgWeeklyIncome:   round2(income / float64(weeks)),
		AvgMonthlyIncome:  round2(income / float64(months)),
		AvgDailyExpense:   round2(expense / float64(durationDays)),
		AvgWeeklyExpense:  round2(expense / float64(weeks)),
		AvgMonthlyExpense: round2(expense / float64(months)),
	}
	c.log.Debugf("Tax estimate for user %d: %.2f over %d days (%s)", userID, est.Tax, est.DurationDays, est.TaxNote)
	return est, nil
}

// bracketTax selects the regime on annualized revenue (4.8B boundary
// inclusive for the UMKM flat rate) and computes the tax from actual
// revenue and profit.
func bracketTax(annualized, revenue, profit float64) (float64, string) {
	switch {
	case annualized <= umkmRevenueCap:
		return umkmFinalRate * revenue, NoteUMKM
	case annualized <= standardRevenueCap:
		apportioned := umkmRevenueCap / annualized * profit
		return reducedProfitRate*apportioned + standardProfitRate*(profit-apportioned), NoteSplit
	default:
		return standardProfitRate * profit, NoteStandard
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
