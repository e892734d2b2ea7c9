package commands

import (
	"context"
	"time"

	"mes/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler moves an order through its lifecycle and
// keeps the claimed machine in step:
//
//   - to Processing: the machine goes Busy with the order confirmed as its
//     current work
//   - to Completed: the machine is released, but only while it is still
//     claimed by this very order; the order's claim interval is closed
//
// A request for the order's current status is a no-op that succeeds without
// touching anything.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
// Requires a UoWFactory spanning order and machine repositories.
func NewTransitionOrderCommandHandler(uowFactory UoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition command. Order and machine are updated in
// one transaction; any failure rolls both back.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	orderEntity, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	changed, err := orderEntity.TransitionTo(cmd.Status())
	if err != nil {
		return err
	}

	if !changed {
		return nil
	}

	machineRepo := uow.MachineRepository()

	switch cmd.Status() {
	case order.Processing:
		if machineID := orderEntity.MachineID(); machineID != nil {
			machineEntity, getErr := machineRepo.Get(ctx, *machineID)
			if getErr != nil {
				return getErr
			}

			if procErr := machineEntity.BeginProcessing(cmd.OrderID()); procErr != nil {
				return procErr
			}

			if updErr := machineRepo.Update(ctx, machineEntity); updErr != nil {
				return updErr
			}
		}

	case order.Completed:
		if machineID := orderEntity.MachineID(); machineID != nil {
			machineEntity, getErr := machineRepo.Get(ctx, *machineID)
			if getErr != nil {
				return getErr
			}

			if machineEntity.ReleaseFor(cmd.OrderID()) {
				if updErr := machineRepo.Update(ctx, machineEntity); updErr != nil {
					return updErr
				}
			}
		}

		if _, closeErr := orderEntity.CloseClaim(time.Now().UTC()); closeErr != nil {
			return closeErr
		}
	}

	if err = orderRepo.Update(ctx, orderEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
