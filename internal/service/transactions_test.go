package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usahaku/scoring-service/internal/models"
)

func TestAddTransactionsValidation(t *testing.T) {
	tests := []struct {
		name string
		req  AddTransactionsRequest
	}{
		{"unknown type", AddTransactionsRequest{Type: "transfer", Items: []TransactionItem{{Amount: 10, Date: "2024-05-01"}}}},
		{"empty items", AddTransactionsRequest{Type: models.TypeIncome}},
		{"missing date everywhere", AddTransactionsRequest{Type: models.TypeIncome, Items: []TransactionItem{{Amount: 10}}}},
		{"malformed date", AddTransactionsRequest{Type: models.TypeIncome, Items: []TransactionItem{{Amount: 10, Date: "01-05-2024"}}}},
		{"negative amount", AddTransactionsRequest{Type: models.TypeExpense, Date: "2024-05-01", Items: []TransactionItem{{Amount: -5}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			_, err := svc.AddTransactions(1, tt.req)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestAddTransactionsFallsBackToRequestDate(t *testing.T) {
	svc, mock := newTestService(t)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(int64(1), models.TypeIncome, "Penjualan", 150000.0, date).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(int64(1), models.TypeIncome, "Jasa kirim", 20000.0, date.AddDate(0, 0, 1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	saved, err := svc.AddTransactions(1, AddTransactionsRequest{
		Type: models.TypeIncome,
		Date: "2024-05-01",
		Items: []TransactionItem{
			{Description: "Penjualan", Amount: 150000},
			{Description: "Jasa kirim", Amount: 20000, Date: "2024-05-02"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTransactionsRejectsUnknownFilter(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListTransactions(1, "transfer", nil, nil)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestChartRejectsUnknownResolution(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Chart(1, "hourly", nil, nil)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestChartResolutionsCoverAllPeriods(t *testing.T) {
	for _, resolution := range []string{"daily", "weekly", "monthly", "yearly"} {
		assert.Contains(t, chartPeriods, resolution)
	}
}
