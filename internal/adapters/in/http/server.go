package http

import (
	"errors"
	"net/http"
	"time"

	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/application/usecases/queries"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/order"
	"mes/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// OrderScheduler launches the automatic lifecycle progression for a freshly
// created order.
type OrderScheduler interface {
	Schedule(orderID kernel.UUID)
}

// Server exposes the engine's operations over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createMachineHandler       commands.CreateMachineCommandHandler
	createOrderHandler         commands.CreateOrderCommandHandler
	transitionOrderHandler     commands.TransitionOrderCommandHandler
	completeOrderHandler       commands.CompleteOrderCommandHandler
	startMaintenanceHandler    commands.StartMaintenanceCommandHandler
	completeMaintenanceHandler commands.CompleteMaintenanceCommandHandler

	// Query handlers
	getAllMachinesHandler            queries.GetAllMachinesQueryHandler
	getActiveOrdersHandler           queries.GetActiveOrdersQueryHandler
	getOrderStatusCountsHandler      queries.GetOrderStatusCountsQueryHandler
	getMachinesDueMaintenanceHandler queries.GetMachinesDueMaintenanceQueryHandler

	scheduler            OrderScheduler
	maintenanceThreshold time.Duration
}

// NewServer creates a new HTTP server with the required command and query
// handlers. The scheduler is kicked off after each successful order creation;
// the maintenance threshold defines how old a machine's last maintenance may
// be before the machine counts as due.
func NewServer(
	createMachineHandler commands.CreateMachineCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	startMaintenanceHandler commands.StartMaintenanceCommandHandler,
	completeMaintenanceHandler commands.CompleteMaintenanceCommandHandler,
	getAllMachinesHandler queries.GetAllMachinesQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getOrderStatusCountsHandler queries.GetOrderStatusCountsQueryHandler,
	getMachinesDueMaintenanceHandler queries.GetMachinesDueMaintenanceQueryHandler,
	scheduler OrderScheduler,
	maintenanceThreshold time.Duration,
) *Server {
	return &Server{
		createMachineHandler:             createMachineHandler,
		createOrderHandler:               createOrderHandler,
		transitionOrderHandler:           transitionOrderHandler,
		completeOrderHandler:             completeOrderHandler,
		startMaintenanceHandler:          startMaintenanceHandler,
		completeMaintenanceHandler:       completeMaintenanceHandler,
		getAllMachinesHandler:            getAllMachinesHandler,
		getActiveOrdersHandler:           getActiveOrdersHandler,
		getOrderStatusCountsHandler:      getOrderStatusCountsHandler,
		getMachinesDueMaintenanceHandler: getMachinesDueMaintenanceHandler,
		scheduler:                        scheduler,
		maintenanceThreshold:             maintenanceThreshold,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/machines", s.CreateMachine)
	api.GET("/machines", s.GetMachines)
	api.GET("/machines/due-maintenance", s.GetMachinesDueMaintenance)
	api.POST("/machines/:machineId/maintenance", s.StartMaintenance)
	api.POST("/machines/:machineId/maintenance/complete", s.CompleteMaintenance)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/status-counts", s.GetOrderStatusCounts)
	api.POST("/orders/:orderId/status", s.TransitionOrder)
	api.POST("/orders/:orderId/complete", s.CompleteOrder)
}

// CreateMachine handles POST /api/v1/machines - registers a new machine.
func (s *Server) CreateMachine(ctx echo.Context) error {
	var body NewMachine
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateMachineCommand(body.Name, body.MachineType)
	if err != nil {
		return badRequest(ctx, "Invalid machine data: "+err.Error())
	}

	if err := s.createMachineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: cmd.MachineID().String()})
}

// GetMachines handles GET /api/v1/machines - retrieves all machines.
func (s *Server) GetMachines(ctx echo.Context) error {
	query := queries.NewGetAllMachinesQuery()

	machines, err := s.getAllMachinesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]Machine, len(machines))
	for i, m := range machines {
		response[i] = Machine{
			ID:          m.ID.String(),
			Name:        m.Name,
			MachineType: m.MachineType,
			Status:      m.Status.String(),
		}
		if m.CurrentOrderID != nil {
			id := m.CurrentOrderID.String()
			response[i].CurrentOrderID = &id
		}
		if m.LastMaintenanceAt != nil {
			at := m.LastMaintenanceAt.Format(time.RFC3339)
			response[i].LastMaintenanceAt = &at
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetMachinesDueMaintenance handles GET /api/v1/machines/due-maintenance -
// retrieves machines whose last maintenance is older than the configured
// threshold, or that were never maintained.
func (s *Server) GetMachinesDueMaintenance(ctx echo.Context) error {
	before := time.Now().UTC().Add(-s.maintenanceThreshold)

	query, err := queries.NewGetMachinesDueMaintenanceQuery(before)
	if err != nil {
		return errorResponse(ctx, err)
	}

	machines, err := s.getMachinesDueMaintenanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]MachineDueMaintenance, len(machines))
	for i, m := range machines {
		response[i] = MachineDueMaintenance{
			ID:          m.ID.String(),
			Name:        m.Name,
			MachineType: m.MachineType,
		}
		if m.LastMaintenanceAt != nil {
			at := m.LastMaintenanceAt.Format(time.RFC3339)
			response[i].LastMaintenanceAt = &at
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// StartMaintenance handles POST /api/v1/machines/:machineId/maintenance -
// puts a machine into maintenance and records who is working on it.
func (s *Server) StartMaintenance(ctx echo.Context) error {
	machineID, err := kernel.UUIDFromString(ctx.Param("machineId"))
	if err != nil {
		return badRequest(ctx, "Invalid machine ID")
	}

	var body MaintenanceRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewStartMaintenanceCommand(machineID, body.Description, body.Technician)
	if err != nil {
		return badRequest(ctx, "Invalid maintenance data: "+err.Error())
	}

	if err := s.startMaintenanceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteMaintenance handles POST /api/v1/machines/:machineId/maintenance/complete -
// returns a machine from maintenance to service.
func (s *Server) CompleteMaintenance(ctx echo.Context) error {
	machineID, err := kernel.UUIDFromString(ctx.Param("machineId"))
	if err != nil {
		return badRequest(ctx, "Invalid machine ID")
	}

	cmd, err := commands.NewCompleteMaintenanceCommand(machineID)
	if err != nil {
		return badRequest(ctx, "Invalid maintenance data: "+err.Error())
	}

	if err := s.completeMaintenanceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateOrder handles POST /api/v1/orders - creates a production order,
// claims the requested machine and kicks off the automatic progression.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(body.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product ID")
	}

	machineID, err := kernel.UUIDFromString(body.MachineID)
	if err != nil {
		return badRequest(ctx, "Invalid machine ID")
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), productID, machineID, body.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	s.scheduler.Schedule(cmd.OrderID())

	return ctx.JSON(http.StatusCreated, Created{ID: cmd.OrderID().String()})
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves all orders
// that have not completed yet.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = Order{
			ID:        o.ID.String(),
			ProductID: o.ProductID.String(),
			Quantity:  o.Quantity,
			OrderDate: o.OrderDate.Format(time.RFC3339),
			Status:    o.Status.String(),
		}
		if o.MachineID != nil {
			id := o.MachineID.String()
			response[i].MachineID = &id
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderStatusCounts handles GET /api/v1/orders/status-counts - summarizes
// the order book by lifecycle status.
func (s *Server) GetOrderStatusCounts(ctx echo.Context) error {
	query := queries.NewGetOrderStatusCountsQuery()

	counts, err := s.getOrderStatusCountsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatusCounts{
		Total:      counts.Total,
		Pending:    counts.Pending,
		Processing: counts.Processing,
		Completed:  counts.Completed,
	})
}

// TransitionOrder handles POST /api/v1/orders/:orderId/status - moves an
// order to the requested lifecycle status.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var body StatusChange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.StatusFromString(body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, status)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	if err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:orderId/complete - finishes an
// order, releases its machine and deducts materials. Safe to call twice.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps domain errors onto HTTP status codes: missing objects
// to 404, busy resources and state conflicts to 409, validation failures
// to 400, everything else to 500.
func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrResourceUnavailable),
		errors.Is(err, errs.ErrStateConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
