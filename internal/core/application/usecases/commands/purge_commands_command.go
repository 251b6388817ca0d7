package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrPurgeCommandsCommandIsNotConstructed = errors.New(
	"PurgeCommandsCommand must be created via NewPurgeCommandsCommand constructor",
)

// PurgeCommandsCommand triggers a retention pass over terminal commands.
// Purging is advisory housekeeping: it is idempotent, safe to re-run, and
// never a correctness dependency.
type PurgeCommandsCommand struct {
	guard guard.ConstructorGuard
}

// NewPurgeCommandsCommand creates a retention pass command.
func NewPurgeCommandsCommand() PurgeCommandsCommand {
	return PurgeCommandsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c PurgeCommandsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeCommandsCommandIsNotConstructed)
}
