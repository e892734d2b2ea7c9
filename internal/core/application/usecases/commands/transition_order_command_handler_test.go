package commands_test

import (
	"testing"
	"time"

	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/machine"
	"mes/internal/core/domain/model/order"
	"mes/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newClaimedFixture(t *testing.T, status order.Status) (*order.Order, *machine.Machine) {
	t.Helper()

	orderID := kernel.NewUUID()
	machineID := kernel.NewUUID()

	o, err := order.NewOrder(orderID, kernel.NewUUID(), 3, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, o.ClaimMachine(kernel.NewUUID(), machineID, time.Now().UTC()))

	m, err := machine.NewMachine(machineID, "CNC mill 3", "CNC")
	require.NoError(t, err)
	require.NoError(t, m.Claim(orderID))

	if status != order.Pending {
		_, err = o.TransitionTo(status)
		require.NoError(t, err)
	}

	return o, m
}

func TestTransitionOrderCommandHandler_Handle_ToProcessing(t *testing.T) {
	ctx := t.Context()
	testOrder, testMachine := newClaimedFixture(t, order.Pending)

	cmd, err := commands.NewTransitionOrderCommand(testOrder.ID(), order.Processing)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	machineRepo := new(MockMachineRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("MachineRepository").Return(machineRepo).Once(),
		machineRepo.On("Get", ctx, testMachine.ID()).Return(testMachine, nil).Once(),
		machineRepo.On("Update", ctx, mock.AnythingOfType("*machine.Machine")).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Processing, testOrder.Status())
	assert.Equal(t, machine.Busy, testMachine.Status())
	require.NotNil(t, testMachine.CurrentOrder())
	assert.True(t, testMachine.CurrentOrder().IsEqual(testOrder.ID()))
	orderRepo.AssertExpectations(t)
	machineRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_SameStatusIsNoop(t *testing.T) {
	ctx := t.Context()
	testOrder, _ := newClaimedFixture(t, order.Processing)

	cmd, err := commands.NewTransitionOrderCommand(testOrder.ID(), order.Processing)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Processing, testOrder.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertNotCalled(t, "MachineRepository")
}

func TestTransitionOrderCommandHandler_Handle_ToCompletedReleasesMachine(t *testing.T) {
	ctx := t.Context()
	testOrder, testMachine := newClaimedFixture(t, order.Processing)

	cmd, err := commands.NewTransitionOrderCommand(testOrder.ID(), order.Completed)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	machineRepo := new(MockMachineRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("MachineRepository").Return(machineRepo).Once(),
		machineRepo.On("Get", ctx, testMachine.ID()).Return(testMachine, nil).Once(),
		machineRepo.On("Update", ctx, mock.AnythingOfType("*machine.Machine")).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Completed, testOrder.Status())
	assert.Equal(t, machine.Available, testMachine.Status())
	assert.Nil(t, testMachine.CurrentOrder())
	require.NotNil(t, testOrder.Claim())
	assert.False(t, testOrder.Claim().IsOpen())
}

func TestTransitionOrderCommandHandler_Handle_CompletedKeepsForeignClaim(t *testing.T) {
	ctx := t.Context()
	testOrder, testMachine := newClaimedFixture(t, order.Processing)

	// The machine has since been claimed by a different order.
	testMachine.ReleaseFor(testOrder.ID())
	otherOrderID := kernel.NewUUID()
	require.NoError(t, testMachine.Claim(otherOrderID))

	cmd, err := commands.NewTransitionOrderCommand(testOrder.ID(), order.Completed)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	machineRepo := new(MockMachineRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("MachineRepository").Return(machineRepo).Once(),
		machineRepo.On("Get", ctx, testMachine.ID()).Return(testMachine, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Completed, testOrder.Status())
	// The foreign claim is untouched.
	assert.Equal(t, machine.Running, testMachine.Status())
	require.NotNil(t, testMachine.CurrentOrder())
	assert.True(t, testMachine.CurrentOrder().IsEqual(otherOrderID))
	machineRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(orderID, order.Processing)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
