package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usahaku/scoring-service/internal/models"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestCreateUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("budi", "budi@example.com", "hashed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, "2024-05-01T10:00:00Z"))

	user := &models.User{Username: "budi", Email: "budi@example.com", PasswordHash: "hashed"}
	require.NoError(t, repo.CreateUser(user))
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByUsernameNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, username").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))

	_, err := repo.FindUserByUsername("ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransactionsCommitsBatch(t *testing.T) {
	repo, mock := newMockRepo(t)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(int64(1), models.TypeIncome, "Penjualan", 150000.0, date).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(int64(1), models.TypeExpense, "Kulakan", 90000.0, date).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	txs := []models.Transaction{
		{UserID: 1, Type: models.TypeIncome, Description: "Penjualan", Amount: 150000, Date: date},
		{UserID: 1, Type: models.TypeExpense, Description: "Kulakan", Amount: 90000, Date: date},
	}
	require.NoError(t, repo.CreateTransactions(txs))
	assert.Equal(t, int64(10), txs[0].ID)
	assert.Equal(t, int64(11), txs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransactionsRollsBackOnFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.CreateTransactions([]models.Transaction{
		{UserID: 1, Type: models.TypeIncome, Amount: 100, Date: date},
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindTransactionsAppliesFilters(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "user_id", "type", "description", "amount", "date"}).
		AddRow(1, 1, models.TypeIncome, "Penjualan", 150000.0, start)
	mock.ExpectQuery(`(?s)SELECT id, user_id, type, description, amount, date.*AND type = \$2 AND date >= \$3 AND date <= \$4`).
		WithArgs(int64(1), models.TypeIncome, start, end).
		WillReturnRows(rows)

	txs, err := repo.FindTransactions(1, models.TypeIncome, &start, &end)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Penjualan", txs[0].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTotalsByType(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"income", "expense"}).AddRow(10_000_000.0, 6_000_000.0))

	income, expense, err := repo.TotalsByType(1)
	require.NoError(t, err)
	assert.Equal(t, 10_000_000.0, income)
	assert.Equal(t, 6_000_000.0, expense)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDailyNetTotals(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"date", "net"}).
		AddRow(start, 150000.0).
		AddRow(start.AddDate(0, 0, 3), -40000.0)
	mock.ExpectQuery("SELECT date, SUM").
		WithArgs(int64(1), start, end).
		WillReturnRows(rows)

	totals, err := repo.DailyNetTotals(1, start, end)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, -40000.0, totals[1].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDateExtentEmptyLedger(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT MIN\(date\), MAX\(date\)`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"min", "max"}).AddRow(nil, nil))

	_, _, ok, err := repo.DateExtent(1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDateExtent(t *testing.T) {
	repo, mock := newMockRepo(t)
	first := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT MIN\(date\), MAX\(date\)`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"min", "max"}).AddRow(first, last))

	gotFirst, gotLast, ok, err := repo.DateExtent(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, first, gotFirst)
	assert.Equal(t, last, gotLast)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRangeSummary(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT").
		WithArgs(int64(1), start, end).
		WillReturnRows(sqlmock.NewRows([]string{"income", "expense", "count"}).
			AddRow(10_000_000.0, 6_000_000.0, 12))

	income, expense, count, err := repo.RangeSummary(1, start, end)
	require.NoError(t, err)
	assert.Equal(t, 10_000_000.0, income)
	assert.Equal(t, 6_000_000.0, expense)
	assert.Equal(t, 12, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChartTotals(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"period", "income", "expense"}).
		AddRow("2024-05", 10_000_000.0, 6_000_000.0).
		AddRow("2024-06", 8_000_000.0, 5_000_000.0)
	mock.ExpectQuery(`SELECT to_char\(date, 'YYYY-MM'\) AS period`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	points, err := repo.ChartTotals(1, "to_char(date, 'YYYY-MM')", nil, nil)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-05", points[0].Period)
	assert.Equal(t, 6_000_000.0, points[0].Expense)
	assert.NoError(t, mock.ExpectationsWereMet())
}
