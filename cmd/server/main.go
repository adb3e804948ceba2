package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quantfoundry/curverisk/internal/config"
	"github.com/quantfoundry/curverisk/internal/database"
	"github.com/quantfoundry/curverisk/internal/database/repositories"
	"github.com/quantfoundry/curverisk/internal/modules/risk"
	"github.com/quantfoundry/curverisk/internal/scheduler"
	"github.com/quantfoundry/curverisk/internal/server"
	"github.com/quantfoundry/curverisk/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting curve risk service")

	// Load the curve set
	cs, err := config.LoadCurveSet(cfg.CurveSetPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.CurveSetPath).Msg("Failed to load curve set")
	}

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize the risk service
	repo := repositories.NewRiskRepository(db)
	riskService := risk.NewService(cs, repo, log)
	riskHandlers := risk.NewHandlers(riskService, log)

	// Initialize scheduler
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	// Register background jobs
	revalueJob := scheduler.NewRevalueJob(log, riskService)
	if err := sched.AddJob(cfg.RevalueSchedule, revalueJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register revaluation job")
	}

	// Run an initial revaluation so the report endpoint has data
	if err := sched.RunNow(revalueJob); err != nil {
		log.Error().Err(err).Msg("Initial revaluation failed")
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Port,
		Log:     log,
		DB:      db,
		Config:  cfg,
		Risk:    riskHandlers,
		DevMode: cfg.DevMode,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
