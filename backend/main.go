package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/jobs"
	"learnhub/backend/repository"
	"learnhub/backend/routes"
	"learnhub/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(utils.LoggerConfig{Format: cfg.LogFormat})
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize database
	db, err := utils.InitDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Error initializing database", "error", err)
	}

	// Snapshot reconciliation
	reconciler := jobs.NewReconciler(
		repository.NewCourseRepository(db, logger),
		repository.NewSectionRepository(db, logger),
		logger,
	)
	scheduler, err := reconciler.Start(cfg.ReconcileSchedule)
	if err != nil {
		logger.Fatalw("Error scheduling reconcile job", "schedule", cfg.ReconcileSchedule, "error", err)
	}

	app := routes.NewApp(db, cfg, logger)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down")
		if scheduler != nil {
			<-scheduler.Stop().Done()
		}
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Errorw("server shutdown", "error", err)
		}
	}()

	// Start server
	logger.Infow("server starting", "port", cfg.ServerPort, "db_driver", cfg.DBDriver)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
