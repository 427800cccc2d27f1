package scoring

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/usahaku/scoring-service/internal/models"
)

// Ledger is the engine's read-only view of a user's transaction history.
// The engine never writes; consistency of the read path belongs to the
// storage layer.
type Ledger interface {
	// TotalsByType returns all-time income and expense sums for the user
	TotalsByType(userID int64) (income, expense float64, err error)
	// IncomeTransactions returns every income transaction for the user
	IncomeTransactions(userID int64) ([]models.Transaction, error)
	// DailyNetTotals returns per-day net amounts (income minus expense)
	// within [start, end]; days without transactions are absent
	DailyNetTotals(userID int64, start, end time.Time) ([]models.DailyTotal, error)
	// DailyExpenseTotals returns per-day expense sums over the whole ledger;
	// days without expenses are absent
	DailyExpenseTotals(userID int64) ([]models.DailyTotal, error)
	// DateExtent returns the user's earliest and latest transaction dates;
	// ok is false for an empty ledger
	DateExtent(userID int64) (first, last time.Time, ok bool, err error)
}

// Engine computes business health scores from a ledger. It holds no
// cross-call state; every call recomputes from the current ledger.
type Engine struct {
	ledger Ledger
	log    *logrus.Logger
	now    func() time.Time
}

// NewEngine initializes a new scoring engine
func NewEngine(ledger Ledger, log *logrus.Logger) *Engine {
	return &Engine{ledger: ledger, log: log, now: time.Now}
}
