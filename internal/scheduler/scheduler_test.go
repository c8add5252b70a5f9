package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental-portal/internal/config"
	"carrental-portal/internal/events"
	"carrental-portal/internal/jobs"
	"carrental-portal/internal/repository/local"
	"carrental-portal/internal/storage"
)

func newRunner(schedule string, views ...string) *jobs.JobRunner {
	ctx := context.Background()
	adapter := storage.NewAdapter(storage.NewMemoryBackend(), 0)
	cfg := &config.Config{Sync: config.SyncConfig{PollSchedule: schedule}}
	jr := jobs.NewJobRunner(events.NewHub(), cfg)
	for _, name := range views {
		jr.RegisterView(name, local.NewStore(ctx, adapter))
	}
	return jr
}

func TestScheduler_RegistersOneJobPerView(t *testing.T) {
	s, err := NewScheduler(newRunner("@every 3s", "admin", "renter"))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Entries())

	assert.False(t, s.IsRunning())
	s.Start()
	assert.True(t, s.IsRunning())
	s.Start()
	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop()
}

func TestScheduler_SecondsPrecision(t *testing.T) {
	s, err := NewScheduler(newRunner("*/3 * * * * *", "admin"))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Entries())
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewScheduler(newRunner("every three seconds", "admin"))
	assert.Error(t, err)
}
