package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"transition-crm/internal/api"
	"transition-crm/internal/api/handlers"
	"transition-crm/internal/auth"
	"transition-crm/internal/config"
	"transition-crm/internal/db"
	"transition-crm/internal/drive"
	"transition-crm/internal/health"
	"transition-crm/internal/logger"
	"transition-crm/internal/repository"
	"transition-crm/internal/scheduler"
	"transition-crm/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load and validate configuration first (before logger)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logger with configuration
	logger.Init(cfg.Logger)

	logger.Info().
		Str("environment", cfg.Logger.Environment).
		Str("log_level", cfg.Logger.Level).
		Msg("configuration loaded successfully")

	// Run migrations before connecting to database
	logger.Info().Msg("running database migrations")
	if err := db.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize database
	ctx := context.Background()
	database, err := db.NewDatabase(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()

	logger.Info().Msg("database connected successfully")

	// Initialize repositories
	memberRepo := repository.NewMemberRepository(database.Pool)
	matchRunRepo := repository.NewMatchRunRepository(database.Pool)

	// Initialize the Drive folder source
	folderSource, err := drive.NewService(ctx, cfg.Drive)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize drive folder source")
	}

	// Initialize services
	matchService := service.NewMatchService(folderSource, memberRepo, matchRunRepo)
	applyService := service.NewApplyService(memberRepo)

	// Initialize handlers
	matchHandler := handlers.NewMatchHandler(matchService, applyService, matchRunRepo)

	// Initialize and start the scan scheduler (feature-flagged)
	if cfg.Features.EnableScheduledScans {
		cronScheduler := scheduler.NewScheduler(matchService, cfg.Matcher.ScanCron, cfg.Matcher.MinConfidence)
		if err := cronScheduler.Start(); err != nil {
			logger.Fatal().Err(err).Msg("failed to start scheduler")
		}
		defer cronScheduler.Stop()
	}

	// Set up Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware
	router.Use(api.RequestIDMiddleware())
	router.Use(api.LoggingMiddleware())
	router.Use(api.CORSMiddleware(cfg.CORS))

	// Health check endpoints
	router.GET("/health", health.Handler)
	router.GET("/health/db", health.DBHandler(database, cfg.Database.HealthTimeout))

	// API routes
	v1 := router.Group("/api/v1")
	v1.Use(auth.APIKeyMiddleware(cfg))
	{
		match := v1.Group("/match")
		{
			match.POST("/runs", matchHandler.TriggerRun)
			match.GET("/runs/:id", matchHandler.GetRun)
			match.GET("/runs/:id/suggestions", matchHandler.ListSuggestions)
			match.POST("/apply", matchHandler.Apply)
		}
	}

	// Start server with configured bind address
	addr := cfg.GetBindAddress()
	// Use a listener so we can discover the selected port when PORT=0
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", addr).Msg("failed to bind listener")
	}

	// Discover the actual port (useful when PORT=0)
	tcpAddr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		_ = ln.Close()
		logger.Fatal().Msg("failed to determine TCP address")
	}
	selectedPort := tcpAddr.Port

	srv := &http.Server{
		Addr:    ln.Addr().String(),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		logger.Info().
			Int("port", selectedPort).
			Str("addr", cfg.Server.Host).
			Msg("starting server")
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	// Give outstanding requests a configured timeout to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")

	// Print the selected port on graceful exit for supervising processes
	fmt.Printf("PORT=%d\n", selectedPort) //nolint:forbidigo // Intentional stdout output for supervisor
}
