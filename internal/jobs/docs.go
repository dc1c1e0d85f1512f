// Package jobs provides scheduled background tasks for the freight
// fulfillment core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. TrackingSyncJob - Runs every five minutes to reconcile tracking data for
// purchased and labeled shipments that have no tracking code yet. The
// webhook-time tracking sync is opportunistic and usually too early, so this
// job is what makes tracking converge.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(syncTrackingHandler, uowFactory, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The tracking job treats carrier failures as transient: they are logged and
// the batch is retried on the next tick.
package jobs
