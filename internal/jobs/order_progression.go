package jobs

import (
	"context"
	"log/slog"
	"time"

	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/order"
)

// TransitionOrderHandler moves an order to a requested lifecycle status.
type TransitionOrderHandler interface {
	Handle(ctx context.Context, cmd commands.TransitionOrderCommand) error
}

// CompleteOrderHandler finishes an order, releasing its machine and
// deducting materials.
type CompleteOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CompleteOrderCommand) error
}

// OrderProgressionScheduler drives a created order through its lifecycle
// automatically: after one delay the order moves to Processing, after a
// second delay it completes. Each scheduled order runs in its own goroutine.
//
// Step failures are logged and swallowed; there are no retries. A failed
// Processing step does not stop the completion step, which tolerates the
// Pending state. In-flight timers do not survive a process restart; the
// idempotent completion operation is the manual recovery path.
type OrderProgressionScheduler struct {
	transitionHandler TransitionOrderHandler
	completeHandler   CompleteOrderHandler
	delay             time.Duration
	logger            *slog.Logger
}

// NewOrderProgressionScheduler creates a scheduler with the given step delay.
func NewOrderProgressionScheduler(
	transitionHandler TransitionOrderHandler,
	completeHandler CompleteOrderHandler,
	delay time.Duration,
	logger *slog.Logger,
) *OrderProgressionScheduler {
	return &OrderProgressionScheduler{
		transitionHandler: transitionHandler,
		completeHandler:   completeHandler,
		delay:             delay,
		logger:            logger.With("component", "order_progression"),
	}
}

// Schedule starts the automatic progression for the order and returns
// immediately.
func (s *OrderProgressionScheduler) Schedule(orderID kernel.UUID) {
	go s.run(orderID)
}

func (s *OrderProgressionScheduler) run(orderID kernel.UUID) {
	ctx := context.Background()

	time.Sleep(s.delay)

	cmd, err := commands.NewTransitionOrderCommand(orderID, order.Processing)
	if err != nil {
		s.logger.ErrorContext(ctx, "Order progression could not build transition", "orderID", orderID, "error", err)
		return
	}
	if err := s.transitionHandler.Handle(ctx, cmd); err != nil {
		s.logger.ErrorContext(ctx, "Order progression to Processing failed", "orderID", orderID, "error", err)
	}

	time.Sleep(s.delay)

	completeCmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Order progression could not build completion", "orderID", orderID, "error", err)
		return
	}
	if err := s.completeHandler.Handle(ctx, completeCmd); err != nil {
		s.logger.ErrorContext(ctx, "Order completion failed", "orderID", orderID, "error", err)
	}
}
