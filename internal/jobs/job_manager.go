package jobs

import (
	"fmt"
	"log/slog"

	"expressia/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	revisionWatchJob *RevisionWatchJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	storeMeta ports.StoreMeta,
	notifier ChangeNotifier,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		revisionWatchJob: NewRevisionWatchJob(storeMeta, notifier, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.revisionWatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start revision watch job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.revisionWatchJob.Stop()
}
