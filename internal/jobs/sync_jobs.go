package jobs

import (
	"context"

	"carrental-portal/internal/events"
	"carrental-portal/internal/logger"
)

// RefreshViews polls every registered view once
func (jr *JobRunner) RefreshViews() {
	for _, name := range jr.Views() {
		jr.RefreshView(name)
	}
}

// RefreshView re-reads the shared store for one view and publishes a
// store.refreshed event per collection another writer changed. It returns
// the changed collection keys.
func (jr *JobRunner) RefreshView(name string) []string {
	var changed []string
	jr.runWithRecovery("RefreshView:"+name, func() {
		view, ok := jr.view(name)
		if !ok {
			logger.Warn("Refresh requested for unknown view", "view", name)
			return
		}

		changed = view.Reload(context.Background())
		for _, key := range changed {
			logger.Info("View picked up external changes", "view", name, "collection", key)
			jr.hub.Publish(events.Event{
				Kind:       events.StoreRefreshed,
				Collection: key,
				View:       name,
				At:         jr.now(),
			})
		}
	})
	return changed
}
