package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/robot"
	"dispatch/internal/core/domain/model/robotcommand"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportExecutionCommandHandler_Handle_DoorReport(t *testing.T) {
	ctx := t.Context()

	target := fixtureRobot(t, robot.Idle)
	queued := fixturePendingCommand(t, target.ID(), robotcommand.OpenDoor)

	cmd, err := commands.NewReportExecutionCommand(queued.ID(), "door_OPEN")
	require.NoError(t, err)

	commandRepo := new(MockCommandRepository)
	commandRepo.On("Get", ctx, queued.ID()).Return(queued, nil).Once()
	commandRepo.On("UpdateIfStatus", ctx, queued, robotcommand.Pending).Return(true, nil).Once()

	robotRepo := new(MockRobotRepository)
	robotRepo.On("Get", ctx, target.ID()).Return(target, nil).Once()
	robotRepo.On("Update", ctx, target).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetActiveByRobot", ctx, target.ID()).Return([]*order.Order{}, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CommandRepository").Return(commandRepo)
	uow.On("RobotRepository").Return(robotRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportExecutionCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, robotcommand.Completed, queued.Status())
	assert.Equal(t, "door_OPEN", queued.Result())
	assert.Equal(t, robot.DoorOpen, target.DoorState())
}

func TestReportExecutionCommandHandler_Handle_StartDeliveryMovesCargo(t *testing.T) {
	ctx := t.Context()

	target := fixtureRobot(t, robot.Loading)
	assigned := fixtureOrder(t, order.Assigned, target.ID())
	queued := fixturePendingCommand(t, target.ID(), robotcommand.StartDelivery)

	cmd, err := commands.NewReportExecutionCommand(queued.ID(), "departed")
	require.NoError(t, err)

	commandRepo := new(MockCommandRepository)
	commandRepo.On("Get", ctx, queued.ID()).Return(queued, nil).Once()
	commandRepo.On("UpdateIfStatus", ctx, queued, robotcommand.Pending).Return(true, nil).Once()

	robotRepo := new(MockRobotRepository)
	robotRepo.On("Get", ctx, target.ID()).Return(target, nil).Once()
	robotRepo.On("Update", ctx, target).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetActiveByRobot", ctx, target.ID()).Return([]*order.Order{assigned}, nil).Once()
	orderRepo.On("UpdateIfStatus", ctx, assigned, order.Assigned).Return(true, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CommandRepository").Return(commandRepo)
	uow.On("RobotRepository").Return(robotRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportExecutionCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, robot.Delivering, target.Status())
	assert.Equal(t, order.Delivering, assigned.Status())
	orderRepo.AssertExpectations(t)
}

func TestReportExecutionCommandHandler_Handle_SweeperWonTheRace(t *testing.T) {
	ctx := t.Context()

	target := fixtureRobot(t, robot.Idle)
	queued := fixturePendingCommand(t, target.ID(), robotcommand.CloseDoor)

	cmd, err := commands.NewReportExecutionCommand(queued.ID(), "door_CLOSED")
	require.NoError(t, err)

	commandRepo := new(MockCommandRepository)
	commandRepo.On("Get", ctx, queued.ID()).Return(queued, nil).Once()
	commandRepo.On("UpdateIfStatus", ctx, queued, robotcommand.Pending).Return(false, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CommandRepository").Return(commandRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportExecutionCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertNotCalled(t, "RobotRepository")
}

func TestReportExecutionCommandHandler_Handle_AlreadyTerminal(t *testing.T) {
	ctx := t.Context()

	target := fixtureRobot(t, robot.Idle)
	queued := fixturePendingCommand(t, target.ID(), robotcommand.OpenDoor)
	require.NoError(t, queued.FailTimeout(queued.SentAt().Add(commands.DefaultCommandTimeout)))

	cmd, err := commands.NewReportExecutionCommand(queued.ID(), "door_OPEN")
	require.NoError(t, err)

	commandRepo := new(MockCommandRepository)
	commandRepo.On("Get", ctx, queued.ID()).Return(queued, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CommandRepository").Return(commandRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportExecutionCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	assert.Equal(t, robotcommand.Failed, queued.Status(), "timeout result stays in place")
	commandRepo.AssertNotCalled(t, "UpdateIfStatus", ctx, mock.Anything, mock.Anything)
}

func TestReportExecutionCommandHandler_Handle_EffectFailureRollsBack(t *testing.T) {
	ctx := t.Context()

	// start_delivery against a robot that is not Loading: the whole report
	// fails and nothing commits, including the command completion.
	target := fixtureRobot(t, robot.Idle)
	queued := fixturePendingCommand(t, target.ID(), robotcommand.StartDelivery)

	cmd, err := commands.NewReportExecutionCommand(queued.ID(), "departed")
	require.NoError(t, err)

	commandRepo := new(MockCommandRepository)
	commandRepo.On("Get", ctx, queued.ID()).Return(queued, nil).Once()
	commandRepo.On("UpdateIfStatus", ctx, queued, robotcommand.Pending).Return(true, nil).Once()

	robotRepo := new(MockRobotRepository)
	robotRepo.On("Get", ctx, target.ID()).Return(target, nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetActiveByRobot", ctx, target.ID()).Return([]*order.Order{}, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CommandRepository").Return(commandRepo)
	uow.On("RobotRepository").Return(robotRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportExecutionCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
	robotRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}
