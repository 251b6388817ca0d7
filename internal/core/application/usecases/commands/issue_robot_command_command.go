package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/robotcommand"
	"dispatch/internal/pkg/guard"
)

var ErrIssueRobotCommandCommandIsNotConstructed = errors.New(
	"IssueRobotCommandCommand must be created via NewIssueRobotCommandCommand constructor",
)

// IssueRobotCommandCommand requests that an instruction be queued for a
// robot.
type IssueRobotCommandCommand struct { //nolint:recvcheck //using for validation
	commandID kernel.UUID
	robotID   kernel.UUID
	cmdType   robotcommand.Type
	sentBy    *kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueRobotCommandCommand creates a command to queue a robot instruction.
// The command identifier is caller-generated so the queued id can be
// returned to the issuer without a read-back.
func NewIssueRobotCommandCommand(
	commandID, robotID kernel.UUID,
	cmdType robotcommand.Type,
	sentBy *kernel.UUID,
) (IssueRobotCommandCommand, error) {
	if err := errors.Join(
		commandID.Validate(),
		robotID.Validate(),
		cmdType.Validate(),
	); err != nil {
		return IssueRobotCommandCommand{}, err
	}

	return IssueRobotCommandCommand{
		commandID: commandID,
		robotID:   robotID,
		cmdType:   cmdType,
		sentBy:    sentBy,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueRobotCommandCommand) Validate() error {
	return c.guard.Validate(ErrIssueRobotCommandCommandIsNotConstructed)
}

// CommandID returns the identifier the queued command will carry.
func (c IssueRobotCommandCommand) CommandID() kernel.UUID {
	return c.commandID
}

// RobotID returns the robot whose queue receives the instruction.
func (c IssueRobotCommandCommand) RobotID() kernel.UUID {
	return c.robotID
}

// Type returns the instruction type.
func (c IssueRobotCommandCommand) Type() robotcommand.Type {
	return c.cmdType
}

// SentBy returns the issuer, nil for system-issued commands.
func (c IssueRobotCommandCommand) SentBy() *kernel.UUID {
	return c.sentBy
}
