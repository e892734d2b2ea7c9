package queries

import (
	"context"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves unfinished orders from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders that are not completed.
// Returns a slice of order read models sorted by order date.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			machine_id,
			quantity,
			order_date,
			status
		FROM orders
		WHERE status != ?
		ORDER BY order_date
	`, int(order.Completed)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id uuid.UUID
		var productID uuid.UUID
		var machineID uuid.NullUUID
		var status int

		err = rows.Scan(
			&id,
			&productID,
			&machineID,
			&resp.Quantity,
			&resp.OrderDate,
			&status,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		prodID, prodErr := kernel.UUIDFromBytes(productID[:])
		if prodErr != nil {
			return nil, prodErr
		}
		resp.ProductID = prodID

		if machineID.Valid {
			mID, mErr := kernel.UUIDFromBytes(machineID.UUID[:])
			if mErr != nil {
				return nil, mErr
			}
			resp.MachineID = &mID
		}

		resp.Status = order.Status(status)
		resp.OrderDate = resp.OrderDate.UTC()

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
