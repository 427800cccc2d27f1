package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
	"github.com/usahaku/scoring-service/internal/config"
	"github.com/usahaku/scoring-service/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendMonthlySummary sends the monthly financial summary email
func (s *Sender) SendMonthlySummary(to, username string, stats models.IncomeExpenseStats, score float64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Your Business Summary for %s", time.Now().Format("January 2006"))

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Here is your business summary as of %s:\n\n"+
			"Total income:   %.2f\n"+
			"Total expense:  %.2f\n"+
			"Profit margin:  %.2f%%\n"+
			"Health score:   %.2f / 100\n\n"+
			"Keep your ledger up to date for more accurate insights.\n"+
			"\nBest regards,\nUsahaKu",
		username, time.Now().Format("2006-01-02"),
		stats.Income, stats.Expense, stats.Margin, score,
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
