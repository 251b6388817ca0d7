package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/robot"
	"dispatch/internal/core/domain/model/robotcommand"
	"dispatch/internal/core/ports"
)

// EmergencyDoorResult is the result recorded on synchronously applied
// emergency door commands.
const EmergencyDoorResult = "emergency door release applied"

// IssueRobotCommandCommandHandler appends an instruction to a robot's queue.
//
// Regular instructions are created Pending and have no entity effect until
// the robot reports execution. The emergency door release bypasses the poll
// round trip: the door opens in the same transaction and the command is
// recorded already Completed, so the safety-critical path never waits on
// the queue.
type IssueRobotCommandCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.CommandNotifier
}

// NewIssueRobotCommandCommandHandler creates a handler for queuing robot
// instructions. The notifier may be nil when no push channel is configured.
func NewIssueRobotCommandCommandHandler(
	uowFactory UoWFactory,
	notifier ports.CommandNotifier,
) IssueRobotCommandCommandHandler {
	return IssueRobotCommandCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the instruction request.
func (h IssueRobotCommandCommandHandler) Handle(ctx context.Context, cmd IssueRobotCommandCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.RobotRepository().Get(ctx, cmd.RobotID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	var queued *robotcommand.RobotCommand
	if cmd.Type() == robotcommand.EmergencyOpenDoor {
		queued, err = h.applyEmergency(ctx, uow, cmd, target, now)
	} else {
		queued, err = robotcommand.NewRobotCommand(cmd.CommandID(), cmd.RobotID(), cmd.Type(), cmd.SentBy(), now)
	}
	if err != nil {
		return err
	}

	if err = uow.CommandRepository().Add(ctx, queued); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil && !queued.Status().IsTerminal() {
		h.notifier.NotifyCommandQueued(ctx, queued)
	}

	return nil
}

func (h IssueRobotCommandCommandHandler) applyEmergency(
	ctx context.Context,
	uow UoW,
	cmd IssueRobotCommandCommand,
	target *robot.Robot,
	now time.Time,
) (*robotcommand.RobotCommand, error) {
	if err := target.SetDoorState(robot.DoorOpen); err != nil {
		return nil, err
	}
	if err := uow.RobotRepository().Update(ctx, target); err != nil {
		return nil, err
	}

	return robotcommand.NewCompletedRobotCommand(
		cmd.CommandID(), cmd.RobotID(), cmd.Type(), cmd.SentBy(), EmergencyDoorResult, now)
}
