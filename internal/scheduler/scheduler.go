package scheduler

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"carrental-portal/internal/jobs"
	"carrental-portal/internal/logger"
)

// Scheduler drives the polling synchronizer. Each view gets its own cron
// entry so views refresh independently of one another.
type Scheduler struct {
	cron    *cron.Cron
	jobs    *jobs.JobRunner
	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler for every view registered on jobRunner.
// Views registered afterwards are not polled.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers one refresh job per view on the poll schedule
func (s *Scheduler) registerJobs() error {
	schedule := s.jobs.Config().Sync.PollSchedule

	for _, name := range s.jobs.Views() {
		view := name
		_, err := s.cron.AddFunc(schedule, func() { s.jobs.RefreshView(view) })
		if err != nil {
			logger.Error("Failed to register refresh job", "view", view, "schedule", schedule, "error", err)
			return err
		}
		logger.Info("Registered refresh job", "view", view, "schedule", schedule)
	}
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	s.running = true
	logger.Info("Cron scheduler started successfully", "jobs", len(s.cron.Entries()))
}

// Stop gracefully stops the cron scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true between Start and Stop
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
