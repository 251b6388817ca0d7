package robotcommand

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrRobotCommandIsNotConstructed is returned when a RobotCommand instance
// was not created through one of the factory functions.
var ErrRobotCommandIsNotConstructed = errors.New(
	"RobotCommand must be created via NewRobotCommand, NewCompletedRobotCommand, or RestoreRobotCommand",
)

// TimeoutResult is the result text written by the sweeper on timed-out
// commands.
const TimeoutResult = "timeout"

// RobotCommand is one instruction issued to a robot. Commands queue per
// robot in sent-at order, are picked up by polling, and leave Pending
// exactly once: through an execution report, a sweeper timeout, or a
// cancellation.
type RobotCommand struct {
	id      kernel.UUID
	robotID kernel.UUID
	cmdType Type
	status  Status

	sentBy *kernel.UUID
	sentAt time.Time

	executedAt *time.Time
	result     string

	isConstructed bool
}

// NewRobotCommand creates a Pending command for a robot's queue.
func NewRobotCommand(id, robotID kernel.UUID, cmdType Type, sentBy *kernel.UUID, now time.Time) (*RobotCommand, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := robotID.Validate(); err != nil {
		return nil, err
	}
	if err := cmdType.Validate(); err != nil {
		return nil, err
	}

	return &RobotCommand{
		id:            id,
		robotID:       robotID,
		cmdType:       cmdType,
		status:        Pending,
		sentBy:        sentBy,
		sentAt:        now,
		isConstructed: true,
	}, nil
}

// NewCompletedRobotCommand creates a command that is already Completed at
// creation time. Used for emergency_open_door, whose effect is applied
// synchronously instead of waiting for the poll round trip.
func NewCompletedRobotCommand(
	id, robotID kernel.UUID,
	cmdType Type,
	sentBy *kernel.UUID,
	result string,
	now time.Time,
) (*RobotCommand, error) {
	cmd, err := NewRobotCommand(id, robotID, cmdType, sentBy, now)
	if err != nil {
		return nil, err
	}
	cmd.status = Completed
	cmd.executedAt = &now
	cmd.result = result
	return cmd, nil
}

// RestoreRobotCommand reconstructs a RobotCommand from persistence.
func RestoreRobotCommand(
	id, robotID kernel.UUID,
	cmdType Type,
	status Status,
	sentBy *kernel.UUID,
	sentAt time.Time,
	executedAt *time.Time,
	result string,
) (*RobotCommand, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := robotID.Validate(); err != nil {
		return nil, err
	}
	if err := cmdType.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &RobotCommand{
		id:            id,
		robotID:       robotID,
		cmdType:       cmdType,
		status:        status,
		sentBy:        sentBy,
		sentAt:        sentAt,
		executedAt:    executedAt,
		result:        result,
		isConstructed: true,
	}, nil
}

// Validate ensures the RobotCommand was properly constructed.
func (c *RobotCommand) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrRobotCommandIsNotConstructed
	}
	return nil
}

// ID returns the command's unique identifier.
func (c *RobotCommand) ID() kernel.UUID {
	return c.id
}

// RobotID returns the robot the command is queued for.
func (c *RobotCommand) RobotID() kernel.UUID {
	return c.robotID
}

// Type returns the instruction type.
func (c *RobotCommand) Type() Type {
	return c.cmdType
}

// Status returns the current lifecycle status.
func (c *RobotCommand) Status() Status {
	return c.status
}

// SentBy returns the issuer, nil for system-issued commands.
func (c *RobotCommand) SentBy() *kernel.UUID {
	return c.sentBy
}

// SentAt returns when the command entered the queue.
func (c *RobotCommand) SentAt() time.Time {
	return c.sentAt
}

// ExecutedAt returns when the command left Pending, nil while queued.
func (c *RobotCommand) ExecutedAt() *time.Time {
	return c.executedAt
}

// Result returns the free-text execution result.
func (c *RobotCommand) Result() string {
	return c.result
}

// Complete records a successful execution report. Fails with StateConflict
// when the command already reached a terminal state, e.g. because the
// sweeper timed it out first.
func (c *RobotCommand) Complete(result string, now time.Time) error {
	if !c.status.IsActionable() {
		return errs.NewStateConflictError("command", c.id.String(), Pending.String(), c.status.String())
	}
	c.status = Completed
	c.executedAt = &now
	c.result = result
	return nil
}

// FailTimeout marks a stale Pending command as Failed with the timeout
// result. Timeout-exempt types never fail this way.
func (c *RobotCommand) FailTimeout(now time.Time) error {
	if c.cmdType.TimeoutExempt() {
		return errs.NewValueIsInvalidError("timeout-exempt command cannot be timed out")
	}
	if c.status != Pending {
		return errs.NewStateConflictError("command", c.id.String(), Pending.String(), c.status.String())
	}
	c.status = Failed
	c.executedAt = &now
	c.result = TimeoutResult
	return nil
}

// Cancel withdraws a queued command before execution.
func (c *RobotCommand) Cancel(now time.Time) error {
	if !c.status.IsActionable() {
		return errs.NewStateConflictError("command", c.id.String(), Pending.String(), c.status.String())
	}
	c.status = Cancelled
	c.executedAt = &now
	return nil
}
