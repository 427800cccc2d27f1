package service

import (
	"context"
	"math"
	"time"

	"github.com/usahaku/scoring-service/internal/models"
)

// FinancialHealth returns all-time income, expense and margin for the
// dashboard. Margin is 0 when there is no income.
func (s *Service) FinancialHealth(userID int64) (*models.IncomeExpenseStats, error) {
	income, expense, err := s.repo.TotalsByType(userID)
	if err != nil {
		return nil, models.DataAccess(err)
	}
	stats := &models.IncomeExpenseStats{Income: income, Expense: expense}
	if income > 0 {
		stats.Margin = math.Round((income-expense)/income*100*100) / 100
	}
	return stats, nil
}

// HealthScore computes the composite business health score. aux may be nil.
func (s *Service) HealthScore(userID int64, aux *models.AuxData) (*models.CompositeResult, error) {
	return s.engine.HealthScore(userID, aux)
}

// TaxEstimate computes the progressive tax estimate over the given range
func (s *Service) TaxEstimate(userID int64, start, end *time.Time) (*models.TaxEstimate, error) {
	return s.tax.Estimate(userID, start, end)
}

// SendMonthlySummaries emails every user with an address their current
// financial stats and default-input health score. Per-user failures are
// logged and skipped so one bad address cannot stall the run.
func (s *Service) SendMonthlySummaries(ctx context.Context) {
	if s.mailer == nil {
		s.log.Warn("Monthly summaries skipped: mailer not configured")
		return
	}
	users, err := s.repo.ListUsersWithEmail()
	if err != nil {
		s.log.Errorf("Failed to list users for monthly summaries: %v", err)
		return
	}
	for _, u := range users {
		if ctx.Err() != nil {
			return
		}
		stats, err := s.FinancialHealth(u.ID)
		if err != nil {
			s.log.Errorf("Failed to compute stats for user %d: %v", u.ID, err)
			continue
		}
		score, err := s.HealthScore(u.ID, nil)
		if err != nil {
			s.log.Errorf("Failed to compute health score for user %d: %v", u.ID, err)
			continue
		}
		if err := s.mailer.SendMonthlySummary(u.Email, u.Username, *stats, score.FinalScore); err != nil {
			s.log.Errorf("Failed to send summary to %s: %v", u.Email, err)
			continue
		}
	}
	s.log.Infof("Monthly summaries sent to %d users", len(users))
}
