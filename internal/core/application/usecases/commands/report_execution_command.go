package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReportExecutionCommandIsNotConstructed = errors.New(
	"ReportExecutionCommand must be created via NewReportExecutionCommand constructor",
)

// ReportExecutionCommand carries a robot's execution report for one queued
// command. The result is free text; door commands follow the
// "door_<OPEN|CLOSED>" convention.
type ReportExecutionCommand struct { //nolint:recvcheck //using for validation
	commandID kernel.UUID
	result    string

	guard guard.ConstructorGuard
}

// NewReportExecutionCommand creates a command recording an execution report.
func NewReportExecutionCommand(commandID kernel.UUID, result string) (ReportExecutionCommand, error) {
	if err := commandID.Validate(); err != nil {
		return ReportExecutionCommand{}, err
	}

	return ReportExecutionCommand{
		commandID: commandID,
		result:    result,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportExecutionCommand) Validate() error {
	return c.guard.Validate(ErrReportExecutionCommandIsNotConstructed)
}

// CommandID returns the reported command's identifier.
func (c ReportExecutionCommand) CommandID() kernel.UUID {
	return c.commandID
}

// Result returns the free-text execution result.
func (c ReportExecutionCommand) Result() string {
	return c.result
}
