// Package jobs provides scheduled background tasks for the shipment tracker.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order store.
//
// # Available Jobs
//
// 1. RevisionWatchJob - Runs every second to detect external storage mutations
// via the orders_revision counter and notify local change bus subscribers
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(storeMeta, changeBus, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The watch job uses the cron expression "* * * * * *" which means it runs
// every second. This frequency keeps independent viewers converging quickly
// after a change that no broadcast announced.
//
// # Error Handling
//
// - Failed revision reads are logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
