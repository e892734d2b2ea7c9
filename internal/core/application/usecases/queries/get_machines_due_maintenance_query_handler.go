package queries

import (
	"context"
	"database/sql"

	"mes/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMachinesDueMaintenanceQueryHandler retrieves machines overdue for
// maintenance. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetMachinesDueMaintenanceQueryHandler struct {
	db *gorm.DB
}

// NewGetMachinesDueMaintenanceQueryHandler creates a handler for overdue
// maintenance queries. Requires a GORM database connection.
func NewGetMachinesDueMaintenanceQueryHandler(db *gorm.DB) GetMachinesDueMaintenanceQueryHandler {
	return GetMachinesDueMaintenanceQueryHandler{db: db}
}

// Handle executes the query to retrieve machines never maintained or last
// maintained before the cutoff. Returns read models sorted by name.
func (h GetMachinesDueMaintenanceQueryHandler) Handle(
	ctx context.Context,
	query GetMachinesDueMaintenanceQuery,
) ([]GetMachinesDueMaintenanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	machines := make([]GetMachinesDueMaintenanceQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			machine_type,
			last_maintenance_at
		FROM machines
		WHERE last_maintenance_at IS NULL OR last_maintenance_at < ?
		ORDER BY name
	`, query.Before()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetMachinesDueMaintenanceQueryResponse
		var id uuid.UUID
		var lastMaintenanceAt sql.NullTime

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.MachineType,
			&lastMaintenanceAt,
		)
		if err != nil {
			return nil, err
		}

		machineID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = machineID

		if lastMaintenanceAt.Valid {
			at := lastMaintenanceAt.Time.UTC()
			resp.LastMaintenanceAt = &at
		}

		machines = append(machines, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return machines, nil
}
