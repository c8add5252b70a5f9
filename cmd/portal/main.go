package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"carrental-portal/internal/config"
	"carrental-portal/internal/logger"
	"carrental-portal/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usageText) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Debug("Starting car rental portal", "store", cfg.Storage.Type, "command", flag.Args())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the shared store
	adapter, closeStore, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		logger.Error("Failed to open store", "error", err)
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	a := newApp(ctx, cfg, adapter, os.Stdout)
	err = a.run(ctx, flag.Args())
	// decision emails go out in the background; let them finish before exit
	a.notifier.Wait()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		code := 1
		if errors.Is(err, errUsage) {
			code = 2
		}
		closeStore()
		stop()
		os.Exit(code)
	}
}

const usageText = `usage: portal [-config path] <group> <action> [flags] [id]

groups:
  vehicles  add | list | show | update | toggle | delete
  rentals   submit | approve | deny | cancel | message | read | list | show | unread
  listings  submit | approve | deny | message | read | list | show | unread
  session   login | logout | whoami
  watch     poll the shared store and print change events until interrupted

Run "portal <group> <action> -h" for the flags of one action.
`
