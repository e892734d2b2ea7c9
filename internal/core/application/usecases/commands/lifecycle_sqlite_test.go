package commands_test

import (
	"context"
	"testing"
	"time"

	"mes/internal/adapters/out/postgres"
	"mes/internal/adapters/out/postgres/machinerepo"
	"mes/internal/adapters/out/postgres/materialrepo"
	"mes/internal/adapters/out/postgres/orderrepo"
	"mes/internal/adapters/out/postgres/productrepo"
	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/machine"
	"mes/internal/core/domain/model/material"
	"mes/internal/core/domain/model/order"
	"mes/internal/core/domain/model/product"
	"mes/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type funcUoWFactory func() commands.UoW

func (f funcUoWFactory) Create() commands.UoW {
	return f()
}

type funcMachineUoWFactory func() commands.MachineUoW

func (f funcMachineUoWFactory) Create() commands.MachineUoW {
	return f()
}

// lifecycleEnv wires the command handlers against a real unit of work over
// an in-memory database, so whole order lifecycles run end to end.
type lifecycleEnv struct {
	t       *testing.T
	db      *gorm.DB
	factory *postgres.GormUnitOfWorkFactory

	createOrder         commands.CreateOrderCommandHandler
	transitionOrder     commands.TransitionOrderCommandHandler
	completeOrder       commands.CompleteOrderCommandHandler
	startMaintenance    commands.StartMaintenanceCommandHandler
	completeMaintenance commands.CompleteMaintenanceCommandHandler
}

func newLifecycleEnv(t *testing.T) *lifecycleEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&machinerepo.MachineDTO{},
		&machinerepo.MaintenanceRecordDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.RequirementDTO{},
		&orderrepo.MachineClaimDTO{},
		&materialrepo.MaterialDTO{},
		&productrepo.ProductDTO{},
		&productrepo.BOMLineDTO{},
	))

	factory := postgres.NewGormUnitOfWorkFactory(db)

	uowFactory := funcUoWFactory(func() commands.UoW { return factory.Create() })
	machineUoWFactory := funcMachineUoWFactory(func() commands.MachineUoW { return factory.Create() })

	return &lifecycleEnv{
		t:                   t,
		db:                  db,
		factory:             factory,
		createOrder:         commands.NewCreateOrderCommandHandler(uowFactory),
		transitionOrder:     commands.NewTransitionOrderCommandHandler(uowFactory),
		completeOrder:       commands.NewCompleteOrderCommandHandler(uowFactory),
		startMaintenance:    commands.NewStartMaintenanceCommandHandler(machineUoWFactory),
		completeMaintenance: commands.NewCompleteMaintenanceCommandHandler(machineUoWFactory),
	}
}

func (env *lifecycleEnv) seedProduct(lines ...product.BOMLine) *product.Product {
	env.t.Helper()

	p, err := product.NewProduct(kernel.NewUUID(), "Widget", "WID-1", "pcs", lines)
	require.NoError(env.t, err)

	uow := env.factory.Create()
	require.NoError(env.t, uow.ProductRepository().Add(context.Background(), p))
	return p
}

func (env *lifecycleEnv) seedMaterial(stock float64) *material.Material {
	env.t.Helper()

	m, err := material.NewMaterial(kernel.NewUUID(), "Steel sheet", "kg", stock,
		time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(env.t, err)

	uow := env.factory.Create()
	require.NoError(env.t, uow.MaterialRepository().Add(context.Background(), m))
	return m
}

func (env *lifecycleEnv) seedMachine() *machine.Machine {
	env.t.Helper()

	m, err := machine.NewMachine(kernel.NewUUID(), "Lathe", "CNC")
	require.NoError(env.t, err)

	uow := env.factory.Create()
	require.NoError(env.t, uow.MachineRepository().Add(context.Background(), m))
	return m
}

func (env *lifecycleEnv) loadOrder(id kernel.UUID) *order.Order {
	env.t.Helper()

	o, err := env.factory.Create().OrderRepository().Get(context.Background(), id)
	require.NoError(env.t, err)
	return o
}

func (env *lifecycleEnv) loadMachine(id kernel.UUID) *machine.Machine {
	env.t.Helper()

	m, err := env.factory.Create().MachineRepository().Get(context.Background(), id)
	require.NoError(env.t, err)
	return m
}

func (env *lifecycleEnv) loadMaterial(id kernel.UUID) *material.Material {
	env.t.Helper()

	m, err := env.factory.Create().MaterialRepository().Get(context.Background(), id)
	require.NoError(env.t, err)
	return m
}

func (env *lifecycleEnv) orderCount() int64 {
	env.t.Helper()

	var count int64
	require.NoError(env.t, env.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	return count
}

func TestOrderLifecycle_CreateAndComplete(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	mat := env.seedMaterial(100)
	line, err := product.NewBOMLine(mat.ID(), 2)
	require.NoError(t, err)
	p := env.seedProduct(line)
	mach := env.seedMachine()

	orderID := kernel.NewUUID()
	createCmd, err := commands.NewCreateOrderCommand(orderID, p.ID(), mach.ID(), 5)
	require.NoError(t, err)
	require.NoError(t, env.createOrder.Handle(ctx, createCmd))

	created := env.loadOrder(orderID)
	assert.Equal(t, order.Pending, created.Status())
	requirements := created.Requirements()
	require.Len(t, requirements, 1)
	assert.InDelta(t, 10, requirements[0].Required(), 1e-9)
	assert.InDelta(t, 0, requirements[0].Processed(), 0)
	require.NotNil(t, created.Claim())
	assert.True(t, created.Claim().IsOpen())

	claimed := env.loadMachine(mach.ID())
	assert.Equal(t, machine.Running, claimed.Status())
	require.NotNil(t, claimed.CurrentOrder())
	assert.True(t, claimed.CurrentOrder().IsEqual(orderID))

	completeCmd, err := commands.NewCompleteOrderCommand(orderID)
	require.NoError(t, err)
	require.NoError(t, env.completeOrder.Handle(ctx, completeCmd))

	completed := env.loadOrder(orderID)
	assert.Equal(t, order.Completed, completed.Status())
	assert.InDelta(t, 10, completed.Requirements()[0].Processed(), 1e-9)
	require.NotNil(t, completed.Claim())
	assert.False(t, completed.Claim().IsOpen())

	assert.InDelta(t, 90, env.loadMaterial(mat.ID()).StockQuantity(), 1e-9)

	released := env.loadMachine(mach.ID())
	assert.Equal(t, machine.Available, released.Status())
	assert.Nil(t, released.CurrentOrder())
}

func TestOrderLifecycle_CompleteTwiceDeductsOnce(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	mat := env.seedMaterial(100)
	line, err := product.NewBOMLine(mat.ID(), 2)
	require.NoError(t, err)
	p := env.seedProduct(line)
	mach := env.seedMachine()

	orderID := kernel.NewUUID()
	createCmd, err := commands.NewCreateOrderCommand(orderID, p.ID(), mach.ID(), 5)
	require.NoError(t, err)
	require.NoError(t, env.createOrder.Handle(ctx, createCmd))

	completeCmd, err := commands.NewCompleteOrderCommand(orderID)
	require.NoError(t, err)
	require.NoError(t, env.completeOrder.Handle(ctx, completeCmd))
	require.NoError(t, env.completeOrder.Handle(ctx, completeCmd))

	assert.InDelta(t, 90, env.loadMaterial(mat.ID()).StockQuantity(), 1e-9)
}

func TestOrderLifecycle_MachineInMaintenanceRejectsOrder(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	p := env.seedProduct()
	mach := env.seedMachine()

	maintCmd, err := commands.NewStartMaintenanceCommand(mach.ID(), "Scheduled service", "J. Fowler")
	require.NoError(t, err)
	require.NoError(t, env.startMaintenance.Handle(ctx, maintCmd))

	createCmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), p.ID(), mach.ID(), 1)
	require.NoError(t, err)

	err = env.createOrder.Handle(ctx, createCmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrResourceUnavailable)
	assert.Equal(t, int64(0), env.orderCount())
}

func TestOrderLifecycle_SecondOrderForSameMachineLoses(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	p := env.seedProduct()
	mach := env.seedMachine()

	winner, err := commands.NewCreateOrderCommand(kernel.NewUUID(), p.ID(), mach.ID(), 1)
	require.NoError(t, err)
	require.NoError(t, env.createOrder.Handle(ctx, winner))

	loser, err := commands.NewCreateOrderCommand(kernel.NewUUID(), p.ID(), mach.ID(), 1)
	require.NoError(t, err)

	err = env.createOrder.Handle(ctx, loser)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrResourceUnavailable)
	assert.Equal(t, int64(1), env.orderCount())
}

func TestOrderLifecycle_RepeatedTransitionIsNoop(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	p := env.seedProduct()
	mach := env.seedMachine()

	orderID := kernel.NewUUID()
	createCmd, err := commands.NewCreateOrderCommand(orderID, p.ID(), mach.ID(), 1)
	require.NoError(t, err)
	require.NoError(t, env.createOrder.Handle(ctx, createCmd))

	transitionCmd, err := commands.NewTransitionOrderCommand(orderID, order.Processing)
	require.NoError(t, err)
	require.NoError(t, env.transitionOrder.Handle(ctx, transitionCmd))

	require.Equal(t, machine.Busy, env.loadMachine(mach.ID()).Status())

	require.NoError(t, env.transitionOrder.Handle(ctx, transitionCmd))

	assert.Equal(t, order.Processing, env.loadOrder(orderID).Status())
	assert.Equal(t, machine.Busy, env.loadMachine(mach.ID()).Status())
}

func TestOrderLifecycle_MaintenanceRejectedWhileRunning(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	p := env.seedProduct()
	mach := env.seedMachine()

	createCmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), p.ID(), mach.ID(), 1)
	require.NoError(t, err)
	require.NoError(t, env.createOrder.Handle(ctx, createCmd))

	maintCmd, err := commands.NewStartMaintenanceCommand(mach.ID(), "Scheduled service", "J. Fowler")
	require.NoError(t, err)

	err = env.startMaintenance.Handle(ctx, maintCmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStateConflict)
	assert.Equal(t, machine.Running, env.loadMachine(mach.ID()).Status())
}

func TestOrderLifecycle_MaintenanceRoundTrip(t *testing.T) {
	env := newLifecycleEnv(t)
	ctx := context.Background()

	mach := env.seedMachine()

	maintCmd, err := commands.NewStartMaintenanceCommand(mach.ID(), "Scheduled service", "J. Fowler")
	require.NoError(t, err)
	require.NoError(t, env.startMaintenance.Handle(ctx, maintCmd))
	require.Equal(t, machine.Maintenance, env.loadMachine(mach.ID()).Status())

	var records int64
	require.NoError(t, env.db.Model(&machinerepo.MaintenanceRecordDTO{}).Count(&records).Error)
	assert.Equal(t, int64(1), records)

	completeCmd, err := commands.NewCompleteMaintenanceCommand(mach.ID())
	require.NoError(t, err)
	require.NoError(t, env.completeMaintenance.Handle(ctx, completeCmd))

	serviced := env.loadMachine(mach.ID())
	assert.Equal(t, machine.Available, serviced.Status())
	assert.NotNil(t, serviced.LastMaintenanceAt())
}
