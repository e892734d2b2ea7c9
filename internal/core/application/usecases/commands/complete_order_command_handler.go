package commands

import (
	"context"
	"time"

	"mes/internal/core/domain/model/order"
	"mes/internal/core/domain/services"
)

// CompleteOrderCommandHandler finishes a production order in one
// transaction:
//
//  1. transition the order to Completed (a no-op if it already is)
//  2. release the machine under the claim-matching rule and close the
//     order's claim interval
//  3. backfill requirement lines from the product's BOM when the order has
//     none (legacy orders created before expansion)
//  4. deduct every line's remaining amount from material stock and mark the
//     line processed
//
// Every step is idempotent, so invoking the handler twice has the effect of
// invoking it once: a second run finds nothing remaining to deduct, no open
// claim, and a machine that is no longer held by the order.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
// Requires a UoWFactory spanning all four repositories.
func NewCompleteOrderCommandHandler(uowFactory UoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion command. Any failure rolls back the whole
// transaction, leaving the order unfinished but consistent.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	now := time.Now().UTC()

	if _, err = orderEntity.TransitionTo(order.Completed); err != nil {
		return err
	}

	if err = h.releaseMachine(ctx, uow, orderEntity); err != nil {
		return err
	}

	if _, err = orderEntity.CloseClaim(now); err != nil {
		return err
	}

	if !orderEntity.HasRequirements() {
		if err = h.backfillRequirements(ctx, uow, orderEntity); err != nil {
			return err
		}
	}

	if err = h.deductRemaining(ctx, uow, orderEntity, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, orderEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// releaseMachine frees the claimed machine if it is still held by this
// order. A machine meanwhile claimed by another order is left untouched.
func (h *CompleteOrderCommandHandler) releaseMachine(ctx context.Context, uow UoW, orderEntity *order.Order) error {
	machineID := orderEntity.MachineID()
	if machineID == nil {
		return nil
	}

	machineRepo := uow.MachineRepository()
	machineEntity, err := machineRepo.Get(ctx, *machineID)
	if err != nil {
		return err
	}

	if !machineEntity.ReleaseFor(orderEntity.ID()) {
		return nil
	}

	return machineRepo.Update(ctx, machineEntity)
}

// backfillRequirements expands the product's BOM for orders persisted
// without requirement lines so completion can still deduct stock.
func (h *CompleteOrderCommandHandler) backfillRequirements(ctx context.Context, uow UoW, orderEntity *order.Order) error {
	productEntity, err := uow.ProductRepository().Get(ctx, orderEntity.ProductID())
	if err != nil {
		return err
	}

	requirements, err := services.NewBOMResolver().Expand(productEntity, orderEntity.Quantity())
	if err != nil {
		return err
	}

	return orderEntity.SetRequirements(requirements)
}

// deductRemaining takes each line's outstanding amount out of material
// stock and marks the line fully processed. Lines with nothing remaining
// are skipped, which is what makes repeated completion harmless.
func (h *CompleteOrderCommandHandler) deductRemaining(
	ctx context.Context,
	uow UoW,
	orderEntity *order.Order,
	now time.Time,
) error {
	materialRepo := uow.MaterialRepository()

	for _, requirement := range orderEntity.Requirements() {
		remaining := requirement.Remaining()
		if remaining <= 0 {
			continue
		}

		materialEntity, err := materialRepo.Get(ctx, requirement.MaterialID())
		if err != nil {
			return err
		}

		if err = materialEntity.Deduct(remaining, now); err != nil {
			return err
		}

		if err = materialRepo.Update(ctx, materialEntity); err != nil {
			return err
		}

		requirement.MarkProcessed()
	}

	return nil
}
