package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/robot"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkArrivedCommandHandler_Handle_StartsPickupWait(t *testing.T) {
	ctx := t.Context()

	carrier := fixtureRobot(t, robot.Delivering)
	delivering := fixtureOrder(t, order.Delivering, carrier.ID())

	cmd, err := commands.NewMarkArrivedCommand(delivering.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	robotRepo := new(MockRobotRepository)
	orderRepo.On("Get", ctx, delivering.ID()).Return(delivering, nil).Once()
	orderRepo.On("UpdateIfStatus", ctx, delivering, order.Delivering).Return(true, nil).Once()
	robotRepo.On("Get", ctx, carrier.ID()).Return(carrier, nil).Once()
	robotRepo.On("Update", ctx, carrier).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("RobotRepository").Return(robotRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkArrivedCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Delivered, delivering.Status())
	require.NotNil(t, carrier.QRWaitStartTime())
	assert.WithinDuration(t, time.Now().UTC(), *carrier.QRWaitStartTime(), time.Minute)
	orderRepo.AssertExpectations(t)
	robotRepo.AssertExpectations(t)
}

func TestMarkArrivedCommandHandler_Handle_NotDelivering(t *testing.T) {
	ctx := t.Context()

	carrier := fixtureRobot(t, robot.Loading)
	assigned := fixtureOrder(t, order.Assigned, carrier.ID())

	cmd, err := commands.NewMarkArrivedCommand(assigned.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, assigned.ID()).Return(assigned, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkArrivedCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestMarkArrivedCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()

	carrier := fixtureRobot(t, robot.Delivering)
	delivering := fixtureOrder(t, order.Delivering, carrier.ID())

	cmd, err := commands.NewMarkArrivedCommand(delivering.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	robotRepo := new(MockRobotRepository)
	orderRepo.On("Get", ctx, delivering.ID()).Return(delivering, nil).Once()
	orderRepo.On("UpdateIfStatus", ctx, delivering, order.Delivering).Return(false, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("RobotRepository").Return(robotRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkArrivedCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	robotRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}
