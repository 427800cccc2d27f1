package service

import (
	"time"

	"github.com/usahaku/scoring-service/internal/export"
	"github.com/usahaku/scoring-service/internal/models"
)

const dateFormat = "2006-01-02"

// TransactionItem is one row of a batch add request. Date falls back to the
// request-level date when empty.
type TransactionItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date,omitempty"`
}

// AddTransactionsRequest is the batch add payload
type AddTransactionsRequest struct {
	Type  string            `json:"type"`
	Date  string            `json:"date,omitempty"`
	Items []TransactionItem `json:"items"`
}

// Chart resolutions mapped to Postgres period expressions
var chartPeriods = map[string]string{
	"daily":   "to_char(date, 'YYYY-MM-DD')",
	"weekly":  "to_char(date, 'IYYY-IW')",
	"monthly": "to_char(date, 'YYYY-MM')",
	"yearly":  "to_char(date, 'YYYY')",
}

// AddTransactions validates and stores a batch of transactions, returning
// how many rows were saved. Validation errors identify the offending row.
func (s *Service) AddTransactions(userID int64, req AddTransactionsRequest) (int, error) {
	if req.Type != models.TypeIncome && req.Type != models.TypeExpense {
		return 0, models.Validationf("type must be %q or %q", models.TypeIncome, models.TypeExpense)
	}
	if len(req.Items) == 0 {
		return 0, models.Validationf("items must not be empty")
	}

	txs := make([]models.Transaction, 0, len(req.Items))
	for i, item := range req.Items {
		dateStr := item.Date
		if dateStr == "" {
			dateStr = req.Date
		}
		if dateStr == "" {
			return 0, models.Validationf("transaction date missing in row %d", i+1)
		}
		date, err := time.Parse(dateFormat, dateStr)
		if err != nil {
			return 0, models.Validationf("invalid date %q in row %d", dateStr, i+1)
		}
		if item.Amount < 0 {
			return 0, models.Validationf("negative amount in row %d", i+1)
		}
		txs = append(txs, models.Transaction{
			UserID:      userID,
			Type:        req.Type,
			Description: item.Description,
			Amount:      item.Amount,
			Date:        date,
		})
	}

	if err := s.repo.CreateTransactions(txs); err != nil {
		return 0, models.DataAccess(err)
	}
	s.log.Infof("Saved %d transactions for user %d", len(txs), userID)
	return len(txs), nil
}

// ListTransactions returns a user's transactions, optionally filtered
func (s *Service) ListTransactions(userID int64, typeFilter string, start, end *time.Time) ([]models.Transaction, error) {
	if typeFilter != "" && typeFilter != models.TypeIncome && typeFilter != models.TypeExpense {
		return nil, models.Validationf("unknown type filter %q", typeFilter)
	}
	txs, err := s.repo.FindTransactions(userID, typeFilter, start, end)
	if err != nil {
		return nil, models.DataAccess(err)
	}
	return txs, nil
}

// Chart returns income/expense totals bucketed by the requested resolution
func (s *Service) Chart(userID int64, resolution string, start, end *time.Time) ([]models.ChartPoint, error) {
	periodExpr, ok := chartPeriods[resolution]
	if !ok {
		return nil, models.Validationf("invalid resolution %q", resolution)
	}
	points, err := s.repo.ChartTotals(userID, periodExpr, start, end)
	if err != nil {
		return nil, models.DataAccess(err)
	}
	return points, nil
}

// TransactionReport renders the ranged ledger as an XML document
func (s *Service) TransactionReport(userID int64, start, end *time.Time) ([]byte, error) {
	user, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}
	txs, err := s.ListTransactions(userID, "", start, end)
	if err != nil {
		return nil, err
	}
	report, err := export.TransactionReport(user.Username, txs)
	if err != nil {
		return nil, err
	}
	return report, nil
}
