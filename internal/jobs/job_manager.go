package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"mes/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	maintenanceDueJob *MaintenanceDueJob
}

// NewJobManager creates a new job manager with all required jobs.
// The per-order progression scheduler is not managed here; it is started on
// demand when an order is created.
func NewJobManager(
	dueMaintenanceHandler queries.GetMachinesDueMaintenanceQueryHandler,
	maintenanceThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		maintenanceDueJob: NewMaintenanceDueJob(dueMaintenanceHandler, maintenanceThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.maintenanceDueJob.Start(); err != nil {
		return fmt.Errorf("failed to start maintenance due job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.maintenanceDueJob.Stop()
}
