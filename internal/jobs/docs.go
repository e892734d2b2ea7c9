// Package jobs provides background tasks for the order lifecycle engine.
//
// Two kinds of work run here:
//
// 1. OrderProgressionScheduler - a per-order two-step timer started when an
// order is created. After a configurable delay the order transitions to
// Processing; after a second delay it completes, releasing the machine and
// deducting materials. Each order progresses in its own goroutine.
//
// 2. MaintenanceDueJob - a cron-based sweep (github.com/robfig/cron/v3)
// running hourly that logs machines overdue for maintenance.
//
// # Usage
//
// Cron jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(dueMaintenanceHandler, threshold, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// The progression scheduler is handed to the HTTP adapter instead and kicked
// off per created order:
//
//	scheduler := jobs.NewOrderProgressionScheduler(transitionHandler, completeHandler, delay, logger)
//	scheduler.Schedule(orderID)
//
// # Error Handling
//
// Progression step failures are logged and swallowed; there are no retries
// and a failed step never stops the remaining steps. The maintenance sweep
// logs query failures and keeps its schedule.
package jobs
