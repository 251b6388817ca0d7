package commands

import (
	"errors"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

var ErrVerifyHandoffCommandIsNotConstructed = errors.New(
	"VerifyHandoffCommand must be created via NewVerifyHandoffCommand constructor",
)

// VerifyHandoffCommand carries a presented proof-of-pickup token. Both
// ingestion surfaces (pre-decoded JSON body and externally decoded image
// scan) funnel into this one command.
type VerifyHandoffCommand struct { //nolint:recvcheck //using for validation
	token services.HandoffToken

	guard guard.ConstructorGuard
}

// NewVerifyHandoffCommand creates a command to verify a handoff token.
func NewVerifyHandoffCommand(token services.HandoffToken) (VerifyHandoffCommand, error) {
	if token.Payload == "" {
		return VerifyHandoffCommand{}, errors.New("token payload is required")
	}

	return VerifyHandoffCommand{
		token: token,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyHandoffCommand) Validate() error {
	return c.guard.Validate(ErrVerifyHandoffCommandIsNotConstructed)
}

// Token returns the presented handoff token.
func (c VerifyHandoffCommand) Token() services.HandoffToken {
	return c.token
}
