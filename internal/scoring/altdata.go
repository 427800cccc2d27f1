package scoring

import "math"

// Alternative-data sub-score names as they appear in the breakdown payload
const (
	SubBillPayment   = "bill_payment"
	SubMobileUsage   = "mobile_usage"
	SubTaxHistory    = "tax_history"
	SubCreditHistory = "credit_history"
)

var (
	billCVBands = []upperBand{
		{below: 0.1, score: 90},
		{below: 0.25, score: 65},
	}
	billRatioBands = []upperBand{
		{below: 0.1, score: 100},
		{below: 0.25, score: 80},
		{below: 0.4, score: 50},
	}
	tenureBands = []lowerBand{
		{min: 5, score: 100},
		{min: 2, incl: true, score: 80},
		{min: 1, incl: true, score: 60},
	}
)

// BillPaymentScore blends payment punctuality (50%), monthly bill stability
// (25%) and the bill-to-income ratio (25%).
func BillPaymentScore(lateIn3M bool, totalLate int, billCV, billRatio float64) float64 {
	punctuality := 100.0
	if lateIn3M {
		punctuality = 40
	} else if totalLate > 0 {
		punctuality = 75
	}
	stability := scoreByUpper(billCV, billCVBands, 30)
	ratio := scoreByUpper(billRatio, billRatioBands, 20)
	return 0.5*punctuality + 0.25*stability + 0.25*ratio
}

// MobileUsageScore blends top-up behavior (50%), phone-number tenure (30%)
// and installed-app signals (20%).
func MobileUsageScore(avgTopup, topupCV, numberAgeYears float64, hasBanking, hasGambling bool) float64 {
	topup := 40.0
	switch {
	case avgTopup > 150000 && topupCV < 0.2:
		topup = 100
	case avgTopup > 100000 && topupCV < 0.3:
		topup = 80
	case avgTopup > 50000 || topupCV < 0.5:
		topup = 60
	}

	tenure := scoreByLower(numberAgeYears, tenureBands, 40)

	app := 60.0
	if hasBanking {
		app += 20
	}
	if hasGambling {
		app -= 40
	}
	app = math.Max(0, math.Min(100, app))

	return 0.5*topup + 0.3*tenure + 0.2*app
}

// TaxHistoryScore rates tax registration and disclosure
func TaxHistoryScore(hasNPWP, providesNPWP bool) float64 {
	switch {
	case hasNPWP && providesNPWP:
		return 80
	case hasNPWP:
		return 40
	default:
		return 20
	}
}

// CreditHistoryScore rates past loan performance. Any failed loan ever
// overrides everything else.
func CreditHistoryScore(hasFailedLoan bool, activeLoans int) float64 {
	if hasFailedLoan {
		return 0
	}
	switch {
	case activeLoans == 0:
		return 100
	case activeLoans == 1:
		return 75
	default:
		return 40
	}
}
