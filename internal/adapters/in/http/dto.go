package http

// Error is the common error response body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewMachine is the request body for machine creation.
type NewMachine struct {
	Name        string `json:"name"`
	MachineType string `json:"machineType"`
}

// Machine is the response body representing a machine.
type Machine struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	MachineType       string  `json:"machineType"`
	Status            string  `json:"status"`
	CurrentOrderID    *string `json:"currentOrderId,omitempty"`
	LastMaintenanceAt *string `json:"lastMaintenanceAt,omitempty"`
}

// NewOrder is the request body for order creation.
type NewOrder struct {
	ProductID string `json:"productId"`
	MachineID string `json:"machineId"`
	Quantity  int    `json:"quantity"`
}

// Order is the response body representing a production order.
type Order struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	MachineID *string `json:"machineId,omitempty"`
	Quantity  int     `json:"quantity"`
	OrderDate string  `json:"orderDate"`
	Status    string  `json:"status"`
}

// Created is the response body carrying the identifier of a new resource.
type Created struct {
	ID string `json:"id"`
}

// StatusChange is the request body for an order status transition.
type StatusChange struct {
	Status string `json:"status"`
}

// MaintenanceRequest is the request body for starting machine maintenance.
type MaintenanceRequest struct {
	Description string `json:"description"`
	Technician  string `json:"technician"`
}

// OrderStatusCounts is the response body summarizing the order book.
type OrderStatusCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
}

// MachineDueMaintenance is the response body for an overdue machine.
type MachineDueMaintenance struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	MachineType       string  `json:"machineType"`
	LastMaintenanceAt *string `json:"lastMaintenanceAt,omitempty"`
}
