package models

// SubScores maps a sub-score name to its value in [0, 100]
type SubScores map[string]float64

// Sum returns the total of all sub-scores
func (s SubScores) Sum() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// CompositeResult is the outcome of a business health score computation.
// PnLBreakdown and ICSBreakdown carry the unweighted sub-scores; the two
// contribution fields carry the weighted totals that sum to FinalScore.
type CompositeResult struct {
	FinalScore      float64   `json:"final_health_score"`
	PnLContribution float64   `json:"pnl_score_contribution"`
	ICSContribution float64   `json:"ics_score_contribution"`
	PnLBreakdown    SubScores `json:"pnl_breakdown"`
	ICSBreakdown    SubScores `json:"ics_breakdown"`
}
