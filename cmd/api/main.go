package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/usahaku/scoring-service/internal/config"
	"github.com/usahaku/scoring-service/internal/handler"
	"github.com/usahaku/scoring-service/internal/integrations/groq"
	"github.com/usahaku/scoring-service/internal/middleware"
	"github.com/usahaku/scoring-service/internal/repository"
	"github.com/usahaku/scoring-service/internal/scoring"
	"github.com/usahaku/scoring-service/internal/service"
	"github.com/usahaku/scoring-service/internal/tax"
	"github.com/usahaku/scoring-service/internal/utils/email"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	engine := scoring.NewEngine(repo, logger)
	taxCalc := tax.NewCalculator(repo, logger)

	var extractor service.ReceiptExtractor
	if cfg.GroqAPIKey != "" {
		extractor = groq.NewClient(cfg, logger)
	} else {
		logger.Warn("GROQ_API_KEY not set, receipt extraction disabled")
	}
	var mailer service.SummaryMailer
	if cfg.MailConfigured() {
		mailer = email.NewSender(cfg, logger)
	} else {
		logger.Warn("SMTP not configured, monthly summaries disabled")
	}

	svc := service.NewService(repo, engine, taxCalc, extractor, mailer, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/profile", h.Profile).Methods("GET")
	authRouter.HandleFunc("/transactions", h.AddTransactions).Methods("POST")
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions/chart", h.Chart).Methods("GET")
	authRouter.HandleFunc("/transactions/report", h.TransactionReport).Methods("GET")
	authRouter.HandleFunc("/dashboard/financial-health", h.FinancialHealth).Methods("GET")
	authRouter.HandleFunc("/score/health", h.HealthScore).Methods("POST")
	authRouter.HandleFunc("/tax/estimate", h.TaxEstimate).Methods("GET")
	authRouter.HandleFunc("/ocr/process-receipt", h.ProcessReceipt).Methods("POST")
	authRouter.HandleFunc("/ocr/classify", h.Classify).Methods("POST")

	// Monthly summary job
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.SummarySchedule, func() {
		svc.SendMonthlySummaries(context.Background())
	}); err != nil {
		logger.Fatalf("Failed to schedule summary job: %v", err)
	}
	scheduler.Start()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Shutdown on SIGINT/SIGTERM: stop the scheduler, drain the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	cronCtx := scheduler.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	<-cronCtx.Done()
	logger.Info("Server stopped")
}
