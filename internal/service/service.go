package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/usahaku/scoring-service/internal/config"
	"github.com/usahaku/scoring-service/internal/integrations/groq"
	"github.com/usahaku/scoring-service/internal/models"
	"github.com/usahaku/scoring-service/internal/repository"
	"github.com/usahaku/scoring-service/internal/scoring"
	"github.com/usahaku/scoring-service/internal/tax"
	"golang.org/x/crypto/bcrypt"
)

// ReceiptExtractor turns a receipt image into candidate transactions and
// classifies free-text descriptions. May be absent when no API key is set.
type ReceiptExtractor interface {
	ExtractReceipt(ctx context.Context, image []byte, mimeType string) ([]groq.ReceiptItem, error)
	Classify(ctx context.Context, description string) (string, error)
}

// SummaryMailer delivers the monthly financial summary
type SummaryMailer interface {
	SendMonthlySummary(to, username string, stats models.IncomeExpenseStats, score float64) error
}

// Service handles business logic
type Service struct {
	repo      *repository.Repository
	engine    *scoring.Engine
	tax       *tax.Calculator
	extractor ReceiptExtractor
	mailer    SummaryMailer
	log       *logrus.Logger
	config    *config.Config
}

// NewService initializes a new service. extractor and mailer may be nil when
// the corresponding integration is not configured.
func NewService(repo *repository.Repository, engine *scoring.Engine, taxCalc *tax.Calculator,
	extractor ReceiptExtractor, mailer SummaryMailer, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:      repo,
		engine:    engine,
		tax:       taxCalc,
		extractor: extractor,
		mailer:    mailer,
		log:       log,
		config:    cfg,
	}
}

// Register creates a new user with hashed password and returns a session token
func (s *Service) Register(username, email, password string) (*models.User, string, error) {
	if username == "" || password == "" {
		return nil, "", models.Validationf("username and password are required")
	}

	if _, err := s.repo.FindUserByUsername(username); err == nil {
		return nil, "", models.Validationf("username already exists")
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, "", models.DataAccess(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, "", models.DataAccess(err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Infof("User registered: %s", user.Username)
	return user, token, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(username, password string) (string, error) {
	user, err := s.repo.FindUserByUsername(username)
	if errors.Is(err, models.ErrNotFound) {
		return "", models.Validationf("invalid credentials")
	}
	if err != nil {
		return "", models.DataAccess(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.Validationf("invalid credentials")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", err
	}

	s.log.Infof("User logged in: %s", user.Username)
	return token, nil
}

// Profile returns the authenticated user's profile
func (s *Service) Profile(userID int64) (*models.User, error) {
	user, err := s.repo.FindUserByID(userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.DataAccess(err)
	}
	return user, nil
}

func (s *Service) issueToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}
