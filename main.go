// File: /main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"milestone-api/config"
	"milestone-api/database"
	"milestone-api/jobs"
	"milestone-api/logger"
	"milestone-api/middleware"
	"milestone-api/repositories"
	"milestone-api/routes"
	"milestone-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.LogLevel)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", logger.FieldError, err)
		os.Exit(1)
	}
	loc, _ := cfg.Location()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		log.Error("failed to connect to database", logger.FieldError, err)
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(db, log); err != nil {
		log.Error("failed to migrate database", logger.FieldError, err)
		os.Exit(1)
	}

	if cfg.SeedData {
		if err := database.SeedData(db, log); err != nil {
			log.Warn("failed to seed database", logger.FieldError, err)
		}
	}

	userRepo := repositories.NewUserRepository(db)
	recordRepo := repositories.NewRecordRepository(db)

	var emailService *services.EmailService
	var mailer services.WelcomeMailer
	if cfg.EmailEnabled() {
		emailService = services.NewEmailService(cfg, log)
		mailer = emailService
	} else {
		log.Info("SMTP_HOST not set, emails are disabled")
	}

	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authService := services.NewAuthService(userRepo, tokens, mailer, log)
	recordService := services.NewRecordService(recordRepo)
	aggregationService := services.NewAggregationService(recordRepo, loc, cfg.CurrencySymbol)

	var reportJob *jobs.SummaryReportJob
	if cfg.SummaryReportInterval > 0 && emailService != nil {
		reportJob = jobs.NewSummaryReportJob(userRepo, aggregationService, emailService, cfg.SummaryReportInterval, log)
		reportJob.Start()
	}

	gin.SetMode(gin.ReleaseMode)
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.SecurityHeaders())
	router.Use(routes.SetupCORS())

	routes.SetupRoutes(router, routes.Dependencies{
		Config:      cfg,
		Location:    loc,
		Log:         log,
		Tokens:      tokens,
		Auth:        authService,
		Records:     recordService,
		Aggregation: aggregationService,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting Milestone API server", "port", cfg.Port, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", logger.FieldError, err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if reportJob != nil {
		reportJob.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", logger.FieldError, err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
