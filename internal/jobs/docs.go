// Package jobs provides scheduled background tasks for the storefront.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. NotificationDispatchJob - drains the notification outbox: every pending order event
// becomes customer, admin and brand emails handed to the notifier
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager, err := jobs.NewJobManager(dispatchHandler, jobs.Config{
//		DispatchSchedule:  "@every 5s",
//		DispatchBatchSize: 50,
//	}, logger)
//	if err != nil {
//		return err
//	}
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules accept the six-field cron format (with seconds) and descriptors such as
// "@every 5s". Overlapping runs are skipped, and a panic inside a run is recovered and logged.
//
// # Error Handling
//
// A failed dispatch is logged and retried on the next tick; messages stay pending in the
// outbox until a run marks them dispatched.
package jobs
