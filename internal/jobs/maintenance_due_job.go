package jobs

import (
	"context"
	"log/slog"
	"time"

	"mes/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// MaintenanceDueJob periodically sweeps the machine park for machines whose
// last maintenance is older than the threshold, or that were never
// maintained, and logs them so operators can plan service windows.
type MaintenanceDueJob struct {
	handler   queries.GetMachinesDueMaintenanceQueryHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewMaintenanceDueJob creates a job sweeping for overdue machines.
// The threshold defines how old a machine's last maintenance may be.
func NewMaintenanceDueJob(
	handler queries.GetMachinesDueMaintenanceQueryHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *MaintenanceDueJob {
	return &MaintenanceDueJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "maintenance_due_job"),
	}
}

// Start begins the maintenance sweep, running at the top of every hour.
func (j *MaintenanceDueJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Maintenance due job started (running hourly)")
	return nil
}

// Stop stops the maintenance sweep.
func (j *MaintenanceDueJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Maintenance due job stopped")
}

func (j *MaintenanceDueJob) sweep() {
	ctx := context.Background()

	query, err := queries.NewGetMachinesDueMaintenanceQuery(time.Now().UTC().Add(-j.threshold))
	if err != nil {
		j.logger.ErrorContext(ctx, "Maintenance due job could not build query", "error", err)
		return
	}

	machines, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Maintenance due sweep failed", "error", err)
		return
	}

	for _, m := range machines {
		j.logger.WarnContext(ctx, "Machine is due for maintenance",
			"machineID", m.ID,
			"name", m.Name,
			"machineType", m.MachineType,
			"lastMaintenanceAt", m.LastMaintenanceAt,
		)
	}
}
