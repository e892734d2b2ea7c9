package queries

import (
	"context"
	"database/sql"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/machine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllMachinesQueryHandler retrieves all machine information from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetAllMachinesQueryHandler struct {
	db *gorm.DB
}

// NewGetAllMachinesQueryHandler creates a handler for machine retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetAllMachinesQueryHandler(db *gorm.DB) GetAllMachinesQueryHandler {
	return GetAllMachinesQueryHandler{db: db}
}

// Handle executes the query to retrieve all machines.
// Returns a slice of machine read models sorted by name.
func (h GetAllMachinesQueryHandler) Handle(
	ctx context.Context,
	query GetAllMachinesQuery,
) ([]GetAllMachinesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	machines := make([]GetAllMachinesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			machine_type,
			status,
			current_order_id,
			last_maintenance_at
		FROM machines
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAllMachinesQueryResponse
		var id uuid.UUID
		var status int
		var currentOrderID uuid.NullUUID
		var lastMaintenanceAt sql.NullTime

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.MachineType,
			&status,
			&currentOrderID,
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
		resp.Status = machine.Status(status)

		if currentOrderID.Valid {
			orderID, orderErr := kernel.UUIDFromBytes(currentOrderID.UUID[:])
			if orderErr != nil {
				return nil, orderErr
			}
			resp.CurrentOrderID = &orderID
		}

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
