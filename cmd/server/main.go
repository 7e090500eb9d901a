package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "coursefund-backend/internal/api/http"
	"coursefund-backend/internal/config"
	"coursefund-backend/internal/jobs"
	"coursefund-backend/internal/logger"
	"coursefund-backend/internal/repository/postgres"
	"coursefund-backend/internal/scheduler"
	"coursefund-backend/internal/security"
	"coursefund-backend/internal/service"
	"coursefund-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CourseFund Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenExpiry(), cfg.RefreshTokenExpiry())

	// Initialize Storage Backend
	var storageBackend storage.StorageBackend
	var mockStorage *storage.MockStorageBackend
	switch cfg.Storage.Type {
	case "", "mock":
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err = storage.NewMockStorageBackend(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		storageBackend = mockStorage
	case "firebase":
		logger.Info("Using firebase storage", "bucket", cfg.Storage.Bucket)
		firebaseStorage, err := storage.NewFirebaseStorageBackend(context.Background(), cfg.Storage.Bucket, cfg.Storage.CredsFile)
		if err != nil {
			logger.Error("Failed to initialize firebase storage", "error", err)
			log.Fatalf("Failed to initialize firebase storage: %v", err)
		}
		storageBackend = firebaseStorage
	default:
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not supported", cfg.Storage.Type)
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository)
	courseSvc := service.NewCourseService(store.CourseRepository)
	ledgerSvc := service.NewLedgerService(
		store.FundingRequestRepository,
		store.LedgerRepository,
		store.UserRepository,
		emailSvc,
		store.NotificationRepository,
	)
	reportingSvc := service.NewReportingService(store.LedgerRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	docSvc := service.NewDocumentService(store.DocumentRepository, store.FundingRequestRepository, storageBackend)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc, userSvc),
		Request:      httpapi.NewRequestHandler(ledgerSvc),
		Course:       httpapi.NewCourseHandler(courseSvc),
		Admin:        httpapi.NewAdminHandler(reportingSvc, ledgerSvc),
		Document:     httpapi.NewDocumentHandler(docSvc),
		Notification: httpapi.NewNotificationHandler(noteSvc),
	}

	router := httpapi.NewRouter(handlers, tokenManager, mockStorage)

	// Initialize Scheduler
	jobServices := &jobs.Services{Email: emailSvc}
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	cronScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
