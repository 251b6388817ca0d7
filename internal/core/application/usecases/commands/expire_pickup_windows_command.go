package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrExpirePickupWindowsCommandIsNotConstructed = errors.New(
	"ExpirePickupWindowsCommand must be created via NewExpirePickupWindowsCommand constructor",
)

// ExpirePickupWindowsCommand triggers a pass of the pickup-window sweeper:
// every robot whose recipient never showed up is auto-returned.
type ExpirePickupWindowsCommand struct {
	guard guard.ConstructorGuard
}

// NewExpirePickupWindowsCommand creates a pickup-window sweeper pass command.
func NewExpirePickupWindowsCommand() ExpirePickupWindowsCommand {
	return ExpirePickupWindowsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ExpirePickupWindowsCommand) Validate() error {
	return c.guard.Validate(ErrExpirePickupWindowsCommandIsNotConstructed)
}
