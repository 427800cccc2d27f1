package scoring

import (
	"time"

	"github.com/usahaku/scoring-service/internal/models"
)

const dateKeyFormat = "2006-01-02"

// dailyNetIncome builds the gap-free daily net-income series covering up to
// windowDays consecutive calendar days ending today, oldest first. Days
// without activity carry 0. The series starts no earlier than the user's
// first transaction, so a young ledger yields a short series and trips the
// minimum-history fallbacks in the sub-scores.
func (e *Engine) dailyNetIncome(userID int64, windowDays int) ([]float64, error) {
	today := truncateToDay(e.now().UTC())
	windowStart := today.AddDate(0, 0, -(windowDays - 1))

	first, _, ok, err := e.ledger.DateExtent(userID)
	if err != nil {
		return nil, models.DataAccess(err)
	}
	if !ok {
		return nil, nil
	}

	start := windowStart
	if f := truncateToDay(first); f.After(start) {
		start = f
	}
	if start.After(today) {
		return nil, nil
	}

	totals, err := e.ledger.DailyNetTotals(userID, start, today)
	if err != nil {
		return nil, models.DataAccess(err)
	}

	byDay := make(map[string]float64, len(totals))
	for _, t := range totals {
		byDay[t.Date.Format(dateKeyFormat)] = t.Amount
	}

	var series []float64
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		series = append(series, byDay[d.Format(dateKeyFormat)])
	}
	return series, nil
}

// dailyExpenseTotals returns the sparse per-day expense sums over the whole
// ledger; days without expenses are absent, unlike the net-income series.
func (e *Engine) dailyExpenseTotals(userID int64) ([]float64, error) {
	totals, err := e.ledger.DailyExpenseTotals(userID)
	if err != nil {
		return nil, models.DataAccess(err)
	}
	amounts := make([]float64, len(totals))
	for i, t := range totals {
		amounts[i] = t.Amount
	}
	return amounts, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
