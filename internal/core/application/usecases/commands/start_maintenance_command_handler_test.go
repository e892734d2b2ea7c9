package commands_test

import (
	"testing"

	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/machine"
	"mes/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartMaintenanceCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	machineID := kernel.NewUUID()
	testMachine, err := machine.NewMachine(machineID, "CNC mill 3", "CNC")
	require.NoError(t, err)

	cmd, err := commands.NewStartMaintenanceCommand(machineID, "Spindle bearing change", "R. Fuentes")
	require.NoError(t, err)

	machineRepo := new(MockMachineRepository)
	uow := new(MockMachineUoW)

	var appendedRecord *machine.MaintenanceRecord

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MachineRepository").Return(machineRepo).Once(),
		machineRepo.On("Get", ctx, machineID).Return(testMachine, nil).Once(),
		machineRepo.On("Update", ctx, mock.AnythingOfType("*machine.Machine")).Return(nil).Once(),
		machineRepo.On("AddMaintenanceRecord", ctx, mock.AnythingOfType("*machine.MaintenanceRecord")).
			Run(func(args mock.Arguments) {
				appendedRecord = args.Get(1).(*machine.MaintenanceRecord)
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMachineUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartMaintenanceCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, machine.Maintenance, testMachine.Status())
	require.NotNil(t, appendedRecord)
	assert.True(t, appendedRecord.MachineID().IsEqual(machineID))
	assert.Equal(t, "Spindle bearing change", appendedRecord.Description())
	assert.Equal(t, "R. Fuentes", appendedRecord.Technician())
	machineRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestStartMaintenanceCommandHandler_Handle_RunningMachineRejected(t *testing.T) {
	ctx := t.Context()
	machineID := kernel.NewUUID()
	testMachine, err := machine.NewMachine(machineID, "CNC mill 3", "CNC")
	require.NoError(t, err)
	require.NoError(t, testMachine.Claim(kernel.NewUUID()))

	cmd, err := commands.NewStartMaintenanceCommand(machineID, "Spindle bearing change", "R. Fuentes")
	require.NoError(t, err)

	machineRepo := new(MockMachineRepository)
	uow := new(MockMachineUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MachineRepository").Return(machineRepo).Once(),
		machineRepo.On("Get", ctx, machineID).Return(testMachine, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMachineUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartMaintenanceCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrStateConflict)
	assert.Equal(t, machine.Running, testMachine.Status())
	machineRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	machineRepo.AssertNotCalled(t, "AddMaintenanceRecord", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestStartMaintenanceCommandHandler_Handle_MachineNotFound(t *testing.T) {
	ctx := t.Context()
	machineID := kernel.NewUUID()

	cmd, err := commands.NewStartMaintenanceCommand(machineID, "Spindle bearing change", "R. Fuentes")
	require.NoError(t, err)

	machineRepo := new(MockMachineRepository)
	uow := new(MockMachineUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MachineRepository").Return(machineRepo).Once(),
		machineRepo.On("Get", ctx, machineID).
			Return(nil, errs.NewObjectNotFoundError("machineID", machineID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMachineUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartMaintenanceCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
