package jobs

import (
	"context"
	"log/slog"

	"expressia/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ChangeNotifier delivers a change signal to local subscribers without
// re-broadcasting it.
type ChangeNotifier interface {
	Notify()
}

// RevisionWatchJob polls the store's revision counter and notifies local
// subscribers when it moves. This catches storage mutations made outside
// this process (another service instance, a manual database edit) that no
// bus broadcast announced.
//
// Runs every second. A broadcast change bumps the revision too, so
// subscribers may be notified twice for one change; delivery is at-least-once
// and receivers reload the full collection either way.
type RevisionWatchJob struct {
	storeMeta ports.StoreMeta
	notifier  ChangeNotifier
	cron      *cron.Cron
	logger    *slog.Logger

	lastSeen int64
	primed   bool
}

// NewRevisionWatchJob creates a job watching the given store metadata.
func NewRevisionWatchJob(storeMeta ports.StoreMeta, notifier ChangeNotifier, logger *slog.Logger) *RevisionWatchJob {
	return &RevisionWatchJob{
		storeMeta: storeMeta,
		notifier:  notifier,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "revision_watch_job"),
	}
}

// Start begins polling the revision counter every second.
func (j *RevisionWatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		revision, err := j.storeMeta.Revision(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Revision watch job failed", "error", err)
			return
		}

		// The first observation establishes the baseline; whatever state
		// existed before this process started is not a change.
		if !j.primed {
			j.lastSeen = revision
			j.primed = true
			return
		}

		if revision != j.lastSeen {
			j.lastSeen = revision
			j.logger.InfoContext(ctx, "Storage mutation detected", "revision", revision)
			j.notifier.Notify()
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Revision watch job started (running every second)")
	return nil
}

// Stop stops the revision watch job.
func (j *RevisionWatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Revision watch job stopped")
}
