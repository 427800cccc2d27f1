package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usahaku/scoring-service/internal/integrations/groq"
	"github.com/usahaku/scoring-service/internal/models"
)

type fakeExtractor struct {
	items    []groq.ReceiptItem
	category string
	err      error
}

func (f *fakeExtractor) ExtractReceipt(ctx context.Context, image []byte, mimeType string) ([]groq.ReceiptItem, error) {
	return f.items, f.err
}

func (f *fakeExtractor) Classify(ctx context.Context, description string) (string, error) {
	return f.category, f.err
}

func TestProcessReceiptWithoutExtractor(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ProcessReceipt(context.Background(), 1, []byte("img"), "image/jpeg")
	assert.ErrorIs(t, err, ErrExtractorUnavailable)
}

func TestProcessReceiptSkipsInvalidRows(t *testing.T) {
	svc, mock := newTestService(t)
	svc.extractor = &fakeExtractor{items: []groq.ReceiptItem{
		{Date: "2024-05-01", Description: "Kopi bubuk 1kg", Amount: 85000, Type: "expense"},
		{Date: "", Description: "tanpa tanggal", Amount: 10000, Type: "expense"},
		{Date: "2024-05-01", Description: "", Amount: 10000, Type: "expense"},
		{Date: "2024-05-01", Description: "gratis", Amount: 0, Type: "expense"},
		{Date: "2024-05-01", Description: "tipe aneh", Amount: 5000, Type: "transfer"},
		{Date: "01/05/2024", Description: "tanggal rusak", Amount: 5000, Type: "expense"},
		{Date: "2024-05-02", Description: "Penjualan eceran", Amount: 40000, Type: "pemasukan"},
	}}

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(int64(1), models.TypeExpense, "Kopi bubuk 1kg", 85000.0, date).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(int64(1), models.TypeIncome, "Penjualan eceran", 40000.0, date.AddDate(0, 0, 1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	saved, err := svc.ProcessReceipt(context.Background(), 1, []byte("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessReceiptNothingUsable(t *testing.T) {
	svc, _ := newTestService(t)
	svc.extractor = &fakeExtractor{items: []groq.ReceiptItem{
		{Date: "", Description: "x", Amount: 10, Type: "expense"},
	}}

	saved, err := svc.ProcessReceipt(context.Background(), 1, []byte("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, 0, saved)
}

func TestClassifyDescription(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ClassifyDescription(context.Background(), "Beli pulsa")
	assert.ErrorIs(t, err, ErrExtractorUnavailable)

	svc.extractor = &fakeExtractor{category: "Operasional"}
	_, err = svc.ClassifyDescription(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrValidation)

	category, err := svc.ClassifyDescription(context.Background(), "Beli pulsa")
	require.NoError(t, err)
	assert.Equal(t, "Operasional", category)
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"income", models.TypeIncome, true},
		{"pemasukan", models.TypeIncome, true},
		{"expense", models.TypeExpense, true},
		{"pengeluaran", models.TypeExpense, true},
		{"transfer", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := normalizeType(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
