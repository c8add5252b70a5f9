package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"sync"

	"carrental-portal/internal/events"
	"carrental-portal/internal/jobs"
	"carrental-portal/internal/logger"
	"carrental-portal/internal/scheduler"
)

const watchView = "portal"

// watch polls the shared store on the configured schedule and prints one JSON
// line per change another process made, until ctx is cancelled.
func (a *app) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	once := fs.Bool("once", false, "poll a single time and exit")
	if _, err := parse(fs, args, false); err != nil {
		return err
	}

	var mu sync.Mutex
	unsubscribe := a.hub.Subscribe(func(e events.Event) {
		if e.Kind != events.StoreRefreshed {
			return
		}
		line, err := json.Marshal(e)
		if err != nil {
			logger.Error("Failed to encode event", "error", err)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(a.out, string(line))
	})
	defer unsubscribe()

	jobRunner := jobs.NewJobRunner(a.hub, a.cfg)
	jobRunner.RegisterView(watchView, a.store)

	if *once {
		jobRunner.RefreshViews()
		return nil
	}

	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		return fmt.Errorf("invalid poll schedule %q: %w", a.cfg.Sync.PollSchedule, err)
	}
	cronScheduler.Start()
	logger.Info("Watching shared store. Press Ctrl+C to stop.", "schedule", a.cfg.Sync.PollSchedule)

	<-ctx.Done()
	cronScheduler.Stop()
	return nil
}
