package robotcommand

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a robot command.
//
// Pending is the only state a command waits in; Executing is a transient
// in-flight marker some robots report. Completed, Failed, and Cancelled are
// terminal and entered exactly once:
//
//	Pending ──┬──> Executing ──┐
//	          │                ├──> Completed | Failed | Cancelled
//	          └────────────────┘
type Status string

const (
	// Pending means the command waits in the robot's queue.
	Pending Status = "PENDING"

	// Executing means the robot reported picking the command up but has not
	// yet reported a result.
	Executing Status = "EXECUTING"

	// Completed means the robot executed the command. Terminal.
	Completed Status = "COMPLETED"

	// Failed means the command was not executed; the sweeper uses this for
	// timed-out commands. Terminal.
	Failed Status = "FAILED"

	// Cancelled means the command was withdrawn before execution. Terminal.
	Cancelled Status = "CANCELLED"
)

func getValidStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Pending:   {},
		Executing: {},
		Completed: {},
		Failed:    {},
		Cancelled: {},
	}
}

// StatusFromString parses a command status from its wire representation.
func StatusFromString(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks if the Status is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid command status", string(s)))
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the command reached a final state.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Failed || s == Cancelled
}

// IsActionable reports whether an execution report may still land on the
// command. Once a terminal state is entered no further transition occurs.
func (s Status) IsActionable() bool {
	return s == Pending || s == Executing
}
