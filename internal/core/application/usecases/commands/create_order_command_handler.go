package commands

import (
	"context"
	"time"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/order"
	"mes/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Claims the requested machine, expands the product's bill of materials into
// requirement lines, and persists the whole aggregate in one transaction.
// If the machine cannot be claimed nothing is written.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), productID, machineID, 15)
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrResourceUnavailable) {
//	    // Machine is busy; nothing was created
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a UoWFactory spanning order, machine, and product repositories.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
//
// Within a single transaction: loads the product and the machine, claims the
// machine for the order (resource-unavailable aborts everything), expands the
// BOM into requirement lines, and persists order, lines, and claim together.
// The repository claim write is conditional on the machine still being
// claimable, so a concurrent creation for the same machine loses cleanly.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productEntity, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	machineRepo := uow.MachineRepository()
	machineEntity, err := machineRepo.Get(ctx, cmd.MachineID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	orderEntity, err := order.NewOrder(cmd.OrderID(), cmd.ProductID(), cmd.Quantity(), now)
	if err != nil {
		return err
	}

	requirements, err := services.NewBOMResolver().Expand(productEntity, cmd.Quantity())
	if err != nil {
		return err
	}

	if err = orderEntity.SetRequirements(requirements); err != nil {
		return err
	}

	if err = machineEntity.Claim(cmd.OrderID()); err != nil {
		return err
	}

	if err = orderEntity.ClaimMachine(kernel.NewUUID(), cmd.MachineID(), now); err != nil {
		return err
	}

	if err = machineRepo.Claim(ctx, machineEntity); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, orderEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
