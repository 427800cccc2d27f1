package scoring

// Band tables make the ordinal, monotonic banding of every sub-score a
// single ordered lookup instead of a conditional chain. Tables are ordered
// tightest band first; the fallback covers everything below the last band.

// upperBand scores a value by the first upper bound it stays strictly under.
// Used for coefficient-of-variation style bands (lower is better).
type upperBand struct {
	below float64
	score float64
}

func scoreByUpper(v float64, table []upperBand, fallback float64) float64 {
	for _, b := range table {
		if v < b.below {
			return b.score
		}
	}
	return fallback
}

// lowerBand scores a value by the highest lower bound it clears. incl makes
// the bound itself qualify.
type lowerBand struct {
	min   float64
	incl  bool
	score float64
}

func scoreByLower(v float64, table []lowerBand, fallback float64) float64 {
	for _, b := range table {
		if v > b.min || (b.incl && v == b.min) {
			return b.score
		}
	}
	return fallback
}
