package commands_test

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/robot"
	"dispatch/internal/core/domain/model/robotcommand"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByIDAndStudent(ctx context.Context, id, studentID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveByRobot(ctx context.Context, robotID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, robotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetDeliveredWaitingSince(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateIfStatus(ctx context.Context, o *order.Order, expected order.Status) (bool, error) {
	args := m.Called(ctx, o, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ConsumeHandoff(ctx context.Context, o *order.Order) (bool, error) {
	args := m.Called(ctx, o)
	return args.Bool(0), args.Error(1)
}

type MockRobotRepository struct{ mock.Mock }

func (m *MockRobotRepository) Add(ctx context.Context, r *robot.Robot) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRobotRepository) Update(ctx context.Context, r *robot.Robot) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRobotRepository) Get(ctx context.Context, id kernel.UUID) (*robot.Robot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*robot.Robot), args.Error(1)
}

func (m *MockRobotRepository) GetAll(ctx context.Context) ([]*robot.Robot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*robot.Robot), args.Error(1)
}

func (m *MockRobotRepository) GetAllAvailable(ctx context.Context) ([]*robot.Robot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*robot.Robot), args.Error(1)
}

func (m *MockRobotRepository) GetPickupWaitExpired(ctx context.Context, cutoff time.Time) ([]*robot.Robot, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*robot.Robot), args.Error(1)
}

type MockCommandRepository struct{ mock.Mock }

func (m *MockCommandRepository) Add(ctx context.Context, c *robotcommand.RobotCommand) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommandRepository) Get(ctx context.Context, id kernel.UUID) (*robotcommand.RobotCommand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*robotcommand.RobotCommand), args.Error(1)
}

func (m *MockCommandRepository) GetActionableByRobot(
	ctx context.Context,
	robotID kernel.UUID,
) ([]*robotcommand.RobotCommand, error) {
	args := m.Called(ctx, robotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*robotcommand.RobotCommand), args.Error(1)
}

func (m *MockCommandRepository) GetPendingOlderThan(
	ctx context.Context,
	cutoff time.Time,
) ([]*robotcommand.RobotCommand, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*robotcommand.RobotCommand), args.Error(1)
}

func (m *MockCommandRepository) UpdateIfStatus(
	ctx context.Context,
	c *robotcommand.RobotCommand,
	expected robotcommand.Status,
) (bool, error) {
	args := m.Called(ctx, c, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommandRepository) DeleteTerminalBefore(
	ctx context.Context,
	status robotcommand.Status,
	cutoff time.Time,
) (int64, error) {
	args := m.Called(ctx, status, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW satisfies every unit-of-work shape the handlers use.
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

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RobotRepository() ports.RobotRepository {
	args := m.Called()
	return args.Get(0).(ports.RobotRepository)
}

func (m *MockUoW) CommandRepository() ports.CommandRepository {
	args := m.Called()
	return args.Get(0).(ports.CommandRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockRobotUoWFactory struct{ mock.Mock }

func (m *MockRobotUoWFactory) Create() commands.RobotUoW {
	args := m.Called()
	return args.Get(0).(commands.RobotUoW)
}

type MockCommandUoWFactory struct{ mock.Mock }

func (m *MockCommandUoWFactory) Create() commands.CommandUoW {
	args := m.Called()
	return args.Get(0).(commands.CommandUoW)
}

type MockCommandNotifier struct{ mock.Mock }

func (m *MockCommandNotifier) NotifyCommandQueued(ctx context.Context, c *robotcommand.RobotCommand) {
	m.Called(ctx, c)
}
