package cmd

import (
	"mes/internal/adapters/out/postgres"
	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateCreateMachineCommandHandler() commands.CreateMachineCommandHandler {
	var f commands.MachineUoWFactory = FuncMachineUoWFactory(func() commands.MachineUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateMachineCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateStartMaintenanceCommandHandler() commands.StartMaintenanceCommandHandler {
	var f commands.MachineUoWFactory = FuncMachineUoWFactory(func() commands.MachineUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartMaintenanceCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteMaintenanceCommandHandler() commands.CompleteMaintenanceCommandHandler {
	var f commands.MachineUoWFactory = FuncMachineUoWFactory(func() commands.MachineUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteMaintenanceCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAllMachinesQueryHandler() queries.GetAllMachinesQueryHandler {
	return queries.NewGetAllMachinesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatusCountsQueryHandler() queries.GetOrderStatusCountsQueryHandler {
	return queries.NewGetOrderStatusCountsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMachinesDueMaintenanceQueryHandler() queries.GetMachinesDueMaintenanceQueryHandler {
	return queries.NewGetMachinesDueMaintenanceQueryHandler(c.gormDB)
}

type FuncMachineUoWFactory func() commands.MachineUoW

func (f FuncMachineUoWFactory) Create() commands.MachineUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
