package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/robot"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderStatusCommand_RejectsPickedUp(t *testing.T) {
	_, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), order.PickedUp)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestUpdateOrderStatusCommandHandler_Handle_AssignFromPending(t *testing.T) {
	ctx := t.Context()

	idle := fixtureRobot(t, robot.Idle)
	pending := fixtureOrder(t, order.Pending, idle.ID())

	cmd, err := commands.NewUpdateOrderStatusCommand(pending.ID(), order.Assigned)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	robotRepo := new(MockRobotRepository)
	orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once()
	robotRepo.On("GetAllAvailable", ctx).Return([]*robot.Robot{idle}, nil).Once()
	robotRepo.On("Update", ctx, idle).Return(nil).Once()
	orderRepo.On("UpdateIfStatus", ctx, pending, order.Pending).Return(true, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("RobotRepository").Return(robotRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Assigned, pending.Status())
	assert.True(t, pending.Robot().IsEqual(idle.ID()))
	assert.Equal(t, robot.Loading, idle.Status())
	orderRepo.AssertExpectations(t)
	robotRepo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_AssignIsIdempotent(t *testing.T) {
	ctx := t.Context()

	assigned := fixtureOrder(t, order.Assigned, kernel.NewUUID())

	cmd, err := commands.NewUpdateOrderStatusCommand(assigned.ID(), order.Assigned)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, assigned.ID()).Return(assigned, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Assigned, assigned.Status())
	orderRepo.AssertNotCalled(t, "UpdateIfStatus", ctx, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_DeliveredStartsPickupWait(t *testing.T) {
	ctx := t.Context()

	carrier := fixtureRobot(t, robot.Delivering)
	delivering := fixtureOrder(t, order.Delivering, carrier.ID())

	cmd, err := commands.NewUpdateOrderStatusCommand(delivering.ID(), order.Delivered)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	robotRepo := new(MockRobotRepository)
	orderRepo.On("Get", ctx, delivering.ID()).Return(delivering, nil).Once()
	robotRepo.On("Get", ctx, carrier.ID()).Return(carrier, nil).Once()
	robotRepo.On("Update", ctx, carrier).Return(nil).Once()
	orderRepo.On("UpdateIfStatus", ctx, delivering, order.Delivering).Return(true, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("RobotRepository").Return(robotRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Delivered, delivering.Status())
	assert.NotNil(t, carrier.QRWaitStartTime())
}

func TestUpdateOrderStatusCommandHandler_Handle_BackwardTransitionRejected(t *testing.T) {
	ctx := t.Context()

	delivering := fixtureOrder(t, order.Delivering, kernel.NewUUID())

	cmd, err := commands.NewUpdateOrderStatusCommand(delivering.ID(), order.Delivering)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, delivering.ID()).Return(delivering, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	orderRepo.AssertNotCalled(t, "UpdateIfStatus", ctx, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUpdateOrderStatusCommandHandler_Handle_NotConstructed(t *testing.T) {
	handler := commands.NewUpdateOrderStatusCommandHandler(new(MockUoWFactory))
	err := handler.Handle(t.Context(), commands.UpdateOrderStatusCommand{})
	require.ErrorIs(t, err, commands.ErrUpdateOrderStatusCommandIsNotConstructed)
}

func TestUpdateOrderStatusCommandHandler_Handle_CancelClearsPickupWait(t *testing.T) {
	ctx := t.Context()

	carrier := fixtureRobot(t, robot.Delivering)
	carrier.StartPickupWait(time.Now().UTC())
	delivered := fixtureOrder(t, order.Delivered, carrier.ID())

	cmd, err := commands.NewUpdateOrderStatusCommand(delivered.ID(), order.Cancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	robotRepo := new(MockRobotRepository)
	orderRepo.On("Get", ctx, delivered.ID()).Return(delivered, nil).Once()
	orderRepo.On("GetActiveByRobot", ctx, carrier.ID()).Return([]*order.Order{}, nil).Once()
	robotRepo.On("Get", ctx, carrier.ID()).Return(carrier, nil).Once()
	robotRepo.On("Update", ctx, carrier).Return(nil).Once()
	orderRepo.On("UpdateIfStatus", ctx, delivered, order.Delivered).Return(true, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("RobotRepository").Return(robotRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Cancelled, delivered.Status())
	assert.Nil(t, carrier.QRWaitStartTime())
	robotRepo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_CancelKeepsWindowForOtherDelivered(t *testing.T) {
	ctx := t.Context()

	carrier := fixtureRobot(t, robot.Delivering)
	carrier.StartPickupWait(time.Now().UTC())
	cancelled := fixtureOrder(t, order.Delivered, carrier.ID())
	waiting := fixtureOrder(t, order.Delivered, carrier.ID())

	cmd, err := commands.NewUpdateOrderStatusCommand(cancelled.ID(), order.Cancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	robotRepo := new(MockRobotRepository)
	orderRepo.On("Get", ctx, cancelled.ID()).Return(cancelled, nil).Once()
	orderRepo.On("GetActiveByRobot", ctx, carrier.ID()).Return([]*order.Order{waiting}, nil).Once()
	orderRepo.On("UpdateIfStatus", ctx, cancelled, order.Delivered).Return(true, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("RobotRepository").Return(robotRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.NotNil(t, carrier.QRWaitStartTime())
	robotRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()

	delivered := fixtureOrder(t, order.Delivered, kernel.NewUUID())

	cmd, err := commands.NewUpdateOrderStatusCommand(delivered.ID(), order.Cancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, delivered.ID()).Return(delivered, nil).Once()
	orderRepo.On("UpdateIfStatus", ctx, delivered, order.Delivered).Return(false, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}
