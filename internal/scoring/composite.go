package scoring

import (
	"math"

	"github.com/usahaku/scoring-service/internal/models"
)

// Each of the 5 P&L sub-scores carries equal weight summing to 70% of the
// final score; each of the 4 alternative-data sub-scores sums to 30%.
const (
	pnlWeight = 0.14
	icsWeight = 0.075
)

// HealthScore computes the composite business health score. A nil aux
// payload means all documented defaults. Computation is unrounded
// throughout; rounding to 2 decimals happens once, on the result.
func (e *Engine) HealthScore(userID int64, aux *models.AuxData) (*models.CompositeResult, error) {
	pnl, err := e.PnLScores(userID)
	if err != nil {
		return nil, err
	}

	in := aux.Resolve()
	ics := models.SubScores{
		SubBillPayment:   BillPaymentScore(in.BillLateIn3M, in.BillTotalLate, in.BillCV, in.BillRatio),
		SubMobileUsage:   MobileUsageScore(in.MobileAvgTopup, in.MobileTopupCV, in.MobileNumberAge, in.MobileHasBanking, in.MobileHasGambling),
		SubTaxHistory:    TaxHistoryScore(in.TaxHasNPWP, in.TaxProvidesNPWP),
		SubCreditHistory: CreditHistoryScore(in.CreditHasFailed, in.CreditActiveLoans),
	}

	pnlPart := pnl.Sum() * pnlWeight
	icsPart := ics.Sum() * icsWeight

	result := &models.CompositeResult{
		FinalScore:      round2(pnlPart + icsPart),
		PnLContribution: round2(pnlPart),
		ICSContribution: round2(icsPart),
		PnLBreakdown:    roundScores(pnl),
		ICSBreakdown:    roundScores(ics),
	}
	e.log.Debugf("Health score computed for user %d: %.2f", userID, result.FinalScore)
	return result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundScores(s models.SubScores) models.SubScores {
	out := make(models.SubScores, len(s))
	for k, v := range s {
		out[k] = round2(v)
	}
	return out
}
