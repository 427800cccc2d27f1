package service

import (
	"context"
	"errors"
	"time"

	"github.com/usahaku/scoring-service/internal/models"
)

// ErrExtractorUnavailable is returned when receipt processing is requested
// without a configured AI client; the handler maps it to 503
var ErrExtractorUnavailable = errors.New("receipt extraction is not configured")

// ProcessReceipt extracts candidate transactions from a receipt image and
// appends the valid ones to the ledger, returning how many were saved.
// Rows with missing fields, invalid dates or non-positive amounts are
// skipped, never failed.
func (s *Service) ProcessReceipt(ctx context.Context, userID int64, image []byte, mimeType string) (int, error) {
	if s.extractor == nil {
		return 0, ErrExtractorUnavailable
	}

	items, err := s.extractor.ExtractReceipt(ctx, image, mimeType)
	if err != nil {
		return 0, err
	}

	var txs []models.Transaction
	for _, item := range items {
		if item.Date == "" || item.Description == "" || item.Amount <= 0 {
			continue
		}
		txType, ok := normalizeType(item.Type)
		if !ok {
			continue
		}
		date, err := time.Parse(dateFormat, item.Date)
		if err != nil {
			s.log.Warnf("Skipping receipt row with invalid date %q: %v", item.Date, err)
			continue
		}
		txs = append(txs, models.Transaction{
			UserID:      userID,
			Type:        txType,
			Description: item.Description,
			Amount:      item.Amount,
			Date:        date,
		})
	}

	if len(txs) == 0 {
		return 0, nil
	}
	if err := s.repo.CreateTransactions(txs); err != nil {
		return 0, models.DataAccess(err)
	}
	s.log.Infof("Receipt processed for user %d: %d transactions saved", userID, len(txs))
	return len(txs), nil
}

// ClassifyDescription maps a transaction description onto one of the fixed
// bookkeeping categories
func (s *Service) ClassifyDescription(ctx context.Context, description string) (string, error) {
	if s.extractor == nil {
		return "", ErrExtractorUnavailable
	}
	if description == "" {
		return "", models.Validationf("description is required")
	}
	return s.extractor.Classify(ctx, description)
}

// normalizeType accepts both the canonical tags and the Indonesian ones the
// extraction model occasionally emits
func normalizeType(t string) (string, bool) {
	switch t {
	case models.TypeIncome, "pemasukan":
		return models.TypeIncome, true
	case models.TypeExpense, "pengeluaran":
		return models.TypeExpense, true
	default:
		return "", false
	}
}
