package commands_test

import (
	"context"
	"time"

	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/machine"
	"mes/internal/core/domain/model/material"
	"mes/internal/core/domain/model/order"
	"mes/internal/core/domain/model/product"
	"mes/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockMachineRepository struct{ mock.Mock }

func (m *MockMachineRepository) Add(ctx context.Context, aggregate *machine.Machine) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMachineRepository) Update(ctx context.Context, aggregate *machine.Machine) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMachineRepository) Claim(ctx context.Context, aggregate *machine.Machine) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMachineRepository) Get(ctx context.Context, id kernel.UUID) (*machine.Machine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*machine.Machine), args.Error(1)
}

func (m *MockMachineRepository) GetAllDueMaintenance(ctx context.Context, before time.Time) ([]*machine.Machine, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*machine.Machine), args.Error(1)
}

func (m *MockMachineRepository) AddMaintenanceRecord(ctx context.Context, record *machine.MaintenanceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockMaterialRepository struct{ mock.Mock }

func (m *MockMaterialRepository) Add(ctx context.Context, aggregate *material.Material) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMaterialRepository) Update(ctx context.Context, aggregate *material.Material) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMaterialRepository) Get(ctx context.Context, id kernel.UUID) (*material.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*material.Material), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) MachineRepository() ports.MachineRepository {
	args := m.Called()
	return args.Get(0).(ports.MachineRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) MaterialRepository() ports.MaterialRepository {
	args := m.Called()
	return args.Get(0).(ports.MaterialRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockMachineUoW struct{ mock.Mock }

func (m *MockMachineUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMachineUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMachineUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMachineUoW) MachineRepository() ports.MachineRepository {
	args := m.Called()
	return args.Get(0).(ports.MachineRepository)
}

type MockMachineUoWFactory struct{ mock.Mock }

func (m *MockMachineUoWFactory) Create() commands.MachineUoW {
	args := m.Called()
	return args.Get(0).(commands.MachineUoW)
}
