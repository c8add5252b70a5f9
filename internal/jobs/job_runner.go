package jobs

import (
	"sync"
	"time"

	"carrental-portal/internal/config"
	"carrental-portal/internal/events"
	"carrental-portal/internal/logger"
	"carrental-portal/internal/repository"
)

// JobRunner coordinates the polling jobs of every registered view
type JobRunner struct {
	mu     sync.RWMutex
	views  map[string]repository.Reloader
	order  []string
	hub    *events.Hub
	config *config.Config
	now    func() time.Time
}

// NewJobRunner creates a job runner that reports refreshes on hub
func NewJobRunner(hub *events.Hub, cfg *config.Config) *JobRunner {
	return &JobRunner{
		views:  make(map[string]repository.Reloader),
		hub:    hub,
		config: cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// RegisterView adds a view to poll. Registering a name twice replaces the view.
func (jr *JobRunner) RegisterView(name string, view repository.Reloader) {
	jr.mu.Lock()
	defer jr.mu.Unlock()
	if _, ok := jr.views[name]; !ok {
		jr.order = append(jr.order, name)
	}
	jr.views[name] = view
}

// Views returns the registered view names in registration order
func (jr *JobRunner) Views() []string {
	jr.mu.RLock()
	defer jr.mu.RUnlock()
	return append([]string(nil), jr.order...)
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

func (jr *JobRunner) view(name string) (repository.Reloader, bool) {
	jr.mu.RLock()
	defer jr.mu.RUnlock()
	v, ok := jr.views[name]
	return v, ok
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Debug("Starting job", "job", jobName)
	jobFunc()
	logger.Debug("Job completed", "job", jobName)
}
