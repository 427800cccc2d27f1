package scoring

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/usahaku/scoring-service/internal/models"
)

// fakeLedger is an in-memory Ledger for engine tests
type fakeLedger struct {
	income       float64
	expense      float64
	incomeTxs    []models.Transaction
	dailyNet     []models.DailyTotal
	dailyExpense []models.DailyTotal
	first, last  time.Time
	hasData      bool
	err          error
}

func (f *fakeLedger) TotalsByType(userID int64) (float64, float64, error) {
	return f.income, f.expense, f.err
}

func (f *fakeLedger) IncomeTransactions(userID int64) ([]models.Transaction, error) {
	return f.incomeTxs, f.err
}

func (f *fakeLedger) DailyNetTotals(userID int64, start, end time.Time) ([]models.DailyTotal, error) {
	return f.dailyNet, f.err
}

func (f *fakeLedger) DailyExpenseTotals(userID int64) ([]models.DailyTotal, error) {
	return f.dailyExpense, f.err
}

func (f *fakeLedger) DateExtent(userID int64) (time.Time, time.Time, bool, error) {
	return f.first, f.last, f.hasData, f.err
}

var testToday = time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)

func newTestEngine(ledger Ledger) *Engine {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	e := NewEngine(ledger, log)
	e.now = func() time.Time { return testToday }
	return e
}

// constantLedger builds a ledger whose daily net income held value for the
// last n days ending today
func constantLedger(n int, value float64) *fakeLedger {
	start := truncateToDay(testToday).AddDate(0, 0, -(n - 1))
	var daily []models.DailyTotal
	for i := 0; i < n; i++ {
		daily = append(daily, models.DailyTotal{Date: start.AddDate(0, 0, i), Amount: value})
	}
	return &fakeLedger{
		dailyNet: daily,
		first:    start,
		last:     truncateToDay(testToday),
		hasData:  true,
	}
}

func TestDailyNetIncomeFillsGaps(t *testing.T) {
	start := truncateToDay(testToday).AddDate(0, 0, -9)
	ledger := &fakeLedger{
		dailyNet: []models.DailyTotal{
			{Date: start, Amount: 100},
			{Date: start.AddDate(0, 0, 4), Amount: -50},
		},
		first:   start,
		last:    truncateToDay(testToday),
		hasData: true,
	}
	e := newTestEngine(ledger)

	series, err := e.dailyNetIncome(1, netIncomeWindowDays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 10 {
		t.Fatalf("expected 10 days, got %d", len(series))
	}
	if series[0] != 100 || series[4] != -50 {
		t.Errorf("expected sparse totals in place, got %v", series)
	}
	for i, v := range series {
		if i != 0 && i != 4 && v != 0 {
			t.Errorf("expected 0 at offset %d, got %v", i, v)
		}
	}
}

func TestDailyNetIncomeCapsAtWindow(t *testing.T) {
	ledger := constantLedger(90, 10)
	ledger.first = truncateToDay(testToday).AddDate(0, 0, -89)
	e := newTestEngine(ledger)

	series, err := e.dailyNetIncome(1, netIncomeWindowDays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != netIncomeWindowDays {
		t.Fatalf("expected %d days, got %d", netIncomeWindowDays, len(series))
	}
}

func TestDailyNetIncomeEmptyLedger(t *testing.T) {
	e := newTestEngine(&fakeLedger{})

	series, err := e.dailyNetIncome(1, netIncomeWindowDays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 0 {
		t.Fatalf("expected empty series, got %d entries", len(series))
	}
}

func TestLedgerFailurePropagatesAsDataAccess(t *testing.T) {
	e := newTestEngine(&fakeLedger{err: errors.New("connection refused")})

	if _, err := e.StabilityScore(1); !errors.Is(err, models.ErrDataAccess) {
		t.Errorf("expected data access error, got %v", err)
	}
	if _, err := e.HealthScore(1, nil); !errors.Is(err, models.ErrDataAccess) {
		t.Errorf("expected data access error from composite, got %v", err)
	}
}
