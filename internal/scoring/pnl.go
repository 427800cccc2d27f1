package scoring

import (
	"strings"

	"github.com/usahaku/scoring-service/internal/models"
)

// P&L sub-score names as they appear in the breakdown payload
const (
	SubProfitability  = "profitability"
	SubStability      = "stability"
	SubTrend          = "trend"
	SubIncomeQuality  = "income_quality"
	SubLoadManagement = "load_management"
)

const netIncomeWindowDays = 60

// Minimum days of history before the series-based scores band for real
const (
	minStabilityDays = 7
	minTrendDays     = 14
)

// trendNeutral stands in for "not enough data", not a genuine midpoint
const trendNeutral = 50

// Income descriptions containing any of these mark non-operating inflows
// (capital injections, loan proceeds, owner deposits, private transfers)
var nonSalesKeywords = []string{"suntikan", "pinjaman", "setoran", "transfer pribadi", "modal"}

var (
	marginBands = []lowerBand{
		{min: 20, score: 90},
		{min: 10, incl: true, score: 70},
		{min: 1, incl: true, score: 45},
	}
	stabilityCVBands = []upperBand{
		{below: 0.3, score: 95},
		{below: 0.7, score: 80},
		{below: 1.2, score: 60},
	}
	trendBands = []lowerBand{
		{min: 0.5, score: 95},
		{min: 0, score: 80},
	}
	qualityBands = []lowerBand{
		{min: 95, score: 95},
		{min: 80, incl: true, score: 80},
		{min: 60, incl: true, score: 60},
	}
	expenseCVBands = []upperBand{
		{below: 0.4, score: 90},
		{below: 0.8, score: 70},
	}
)

// ProfitabilityScore bands the all-time profit margin. A ledger with no
// income scores 0. Margins in (0, 1) and negative margins also score 0;
// only an exactly break-even ledger scores 20.
func (e *Engine) ProfitabilityScore(userID int64) (float64, error) {
	income, expense, err := e.ledger.TotalsByType(userID)
	if err != nil {
		return 0, models.DataAccess(err)
	}
	if income == 0 {
		return 0, nil
	}
	margin := (income - expense) / income * 100
	if margin == 0 {
		return 20, nil
	}
	return scoreByLower(margin, marginBands, 0), nil
}

// StabilityScore bands the coefficient of variation of the daily net-income
// series. Under 7 days of history it scores 0; a non-positive mean scores
// the flag value 10 instead of a meaningless CV.
func (e *Engine) StabilityScore(userID int64) (float64, error) {
	series, err := e.dailyNetIncome(userID, netIncomeWindowDays)
	if err != nil {
		return 0, err
	}
	if len(series) < minStabilityDays {
		return 0, nil
	}
	m := mean(series)
	if m <= 0 {
		return 10, nil
	}
	return scoreByUpper(stdDev(series)/m, stabilityCVBands, 30), nil
}

// TrendScore bands the OLS slope of the daily net-income series, normalized
// by its mean. Under 14 days of history it returns the neutral 50.
func (e *Engine) TrendScore(userID int64) (float64, error) {
	series, err := e.dailyNetIncome(userID, netIncomeWindowDays)
	if err != nil {
		return 0, err
	}
	if len(series) < minTrendDays {
		return trendNeutral, nil
	}
	m := mean(series)
	if m <= 0 {
		return 10, nil
	}
	nt := olsSlope(series) / m * 100
	if nt == 0 {
		return 60, nil
	}
	return scoreByLower(nt, trendBands, 30), nil
}

// IncomeQualityScore bands the share of income that looks like genuine sales
// rather than capital injections or loans, by keyword match on descriptions.
func (e *Engine) IncomeQualityScore(userID int64) (float64, error) {
	txs, err := e.ledger.IncomeTransactions(userID)
	if err != nil {
		return 0, models.DataAccess(err)
	}
	if len(txs) == 0 {
		return 0, nil
	}
	var total, sales float64
	for _, tx := range txs {
		total += tx.Amount
		if !containsAny(strings.ToLower(tx.Description), nonSalesKeywords) {
			sales += tx.Amount
		}
	}
	if total == 0 {
		return 0, nil
	}
	return scoreByLower(sales/total*100, qualityBands, 30), nil
}

// LoadManagementScore blends profitability (efficiency) with how predictable
// the per-day expense totals are, half weight each. Fewer than 7 distinct
// expense days gives a neutral 50 predictability.
func (e *Engine) LoadManagementScore(userID int64) (float64, error) {
	efficiency, err := e.ProfitabilityScore(userID)
	if err != nil {
		return 0, err
	}
	expenses, err := e.dailyExpenseTotals(userID)
	if err != nil {
		return 0, err
	}

	predictability := 50.0
	if len(expenses) >= 7 {
		if m := mean(expenses); m == 0 {
			predictability = 100
		} else {
			predictability = scoreByUpper(stdDev(expenses)/m, expenseCVBands, 40)
		}
	}
	return 0.5*efficiency + 0.5*predictability, nil
}

// PnLScores computes the five ledger-derived sub-scores
func (e *Engine) PnLScores(userID int64) (models.SubScores, error) {
	profitability, err := e.ProfitabilityScore(userID)
	if err != nil {
		return nil, err
	}
	stability, err := e.StabilityScore(userID)
	if err != nil {
		return nil, err
	}
	trend, err := e.TrendScore(userID)
	if err != nil {
		return nil, err
	}
	quality, err := e.IncomeQualityScore(userID)
	if err != nil {
		return nil, err
	}
	load, err := e.LoadManagementScore(userID)
	if err != nil {
		return nil, err
	}
	return models.SubScores{
		SubProfitability:  profitability,
		SubStability:      stability,
		SubTrend:          trend,
		SubIncomeQuality:  quality,
		SubLoadManagement: load,
	}, nil
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
