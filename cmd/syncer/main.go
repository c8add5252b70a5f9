package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"carrental-portal/internal/config"
	"carrental-portal/internal/events"
	"carrental-portal/internal/jobs"
	"carrental-portal/internal/logger"
	"carrental-portal/internal/repository/local"
	"carrental-portal/internal/scheduler"
	"carrental-portal/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.Bool("run-once", false, "Refresh every view once and exit")
	viewName := flag.String("view", "syncer", "Name reported for this view in change events")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting car rental store synchronizer...", "log_level", cfg.Log.Level, "store", cfg.Storage.Type)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the shared store
	adapter, closeStore, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		logger.Error("Failed to open store", "error", err)
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	// Build this process's view and log what other processes change
	view := local.NewStore(ctx, adapter)
	hub := events.NewHub()
	hub.Subscribe(func(e events.Event) {
		logger.Info("Store changed", "view", e.View, "collection", e.Collection)
	})

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(hub, cfg)
	jobRunner.RegisterView(*viewName, view)

	// Check if running a single refresh
	if *runOnce {
		logger.Info("Refreshing views once")
		jobRunner.RefreshViews()
		logger.Info("Refresh completed")
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		logger.Error("Failed to schedule refresh jobs", "error", err)
		closeStore()
		log.Fatalf("Failed to schedule refresh jobs: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Synchronizer is running. Press Ctrl+C to stop.", "schedule", cfg.Sync.PollSchedule)

	// Wait for interrupt signal
	<-ctx.Done()

	// Graceful shutdown
	logger.Info("Shutting down synchronizer...")
	cronScheduler.Stop()
	logger.Info("Synchronizer stopped. Goodbye!")
}
