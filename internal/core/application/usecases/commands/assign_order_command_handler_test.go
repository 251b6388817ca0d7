package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/robot"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignOrderCommandHandler_Handle_ExplicitRobot(t *testing.T) {
	ctx := t.Context()

	idle := fixtureRobot(t, robot.Idle)
	pending := fixtureOrder(t, order.Pending, idle.ID())
	robotID := idle.ID()

	cmd, err := commands.NewAssignOrderCommand(pending.ID(), &robotID, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	robotRepo := new(MockRobotRepository)
	orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once()
	robotRepo.On("Get", ctx, robotID).Return(idle, nil).Once()
	orderRepo.On("UpdateIfStatus", ctx, pending, order.Pending).Return(true, nil).Once()
	robotRepo.On("Update", ctx, idle).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("RobotRepository").Return(robotRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignOrderCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Assigned, pending.Status())
	assert.True(t, pending.Robot().IsEqual(robotID))
	assert.Equal(t, robot.Loading, idle.Status())
	orderRepo.AssertExpectations(t)
	robotRepo.AssertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_AutoSelect(t *testing.T) {
	ctx := t.Context()

	idle := fixtureRobot(t, robot.Idle)
	pending := fixtureOrder(t, order.Pending, idle.ID())

	cmd, err := commands.NewAssignOrderCommand(pending.ID(), nil, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	robotRepo := new(MockRobotRepository)
	orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once()
	robotRepo.On("GetAllAvailable", ctx).Return([]*robot.Robot{idle}, nil).Once()
	orderRepo.On("UpdateIfStatus", ctx, pending, order.Pending).Return(true, nil).Once()
	robotRepo.On("Update", ctx, idle).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("RobotRepository").Return(robotRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignOrderCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.True(t, pending.Robot().IsEqual(idle.ID()))
}

func TestAssignOrderCommandHandler_Handle_NoRobotAvailable(t *testing.T) {
	ctx := t.Context()

	pending := fixtureOrder(t, order.Pending, kernel.NewUUID())
	cmd, err := commands.NewAssignOrderCommand(pending.ID(), nil, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	robotRepo := new(MockRobotRepository)
	orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once()
	robotRepo.On("GetAllAvailable", ctx).Return([]*robot.Robot{}, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("RobotRepository").Return(robotRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAssignOrderCommandHandler_Handle_OrderNotPending(t *testing.T) {
	ctx := t.Context()

	idle := fixtureRobot(t, robot.Idle)
	assigned := fixtureOrder(t, order.Assigned, idle.ID())
	robotID := idle.ID()

	cmd, err := commands.NewAssignOrderCommand(assigned.ID(), &robotID, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	robotRepo := new(MockRobotRepository)
	orderRepo.On("Get", ctx, assigned.ID()).Return(assigned, nil).Once()
	robotRepo.On("Get", ctx, robotID).Return(idle, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("RobotRepository").Return(robotRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAssignOrderCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()

	idle := fixtureRobot(t, robot.Idle)
	pending := fixtureOrder(t, order.Pending, idle.ID())
	robotID := idle.ID()

	cmd, err := commands.NewAssignOrderCommand(pending.ID(), &robotID, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	robotRepo := new(MockRobotRepository)
	orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once()
	robotRepo.On("Get", ctx, robotID).Return(idle, nil).Once()
	orderRepo.On("UpdateIfStatus", ctx, pending, order.Pending).Return(false, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("RobotRepository").Return(robotRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	robotRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}
