package services

import (
	"strings"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/robot"
	"dispatch/internal/core/domain/model/robotcommand"
)

// ExecutionReport carries what a robot reported back for a command.
type ExecutionReport struct {
	// Result is the free-text result payload. Door commands use the
	// "door_<OPEN|CLOSED>" convention; anything else is informational.
	Result string

	// Now is the server-side time the report was processed.
	Now time.Time
}

// Effect mutates a robot and its current orders in response to one executed
// command. Effects either fully apply or return an error; the caller rolls
// the transaction back on error so no partial mutation is ever persisted.
type Effect func(r *robot.Robot, orders []*order.Order, report ExecutionReport) error

// CommandEffects maps each command type to the entity mutation its
// execution report triggers. Command types without an entry (arrival,
// auto-return, emergency) have their effects applied through dedicated
// engine operations and are a no-op here.
type CommandEffects struct {
	effects map[robotcommand.Type]Effect
}

// NewCommandEffects builds the effect table.
func NewCommandEffects() CommandEffects {
	return CommandEffects{
		effects: map[robotcommand.Type]Effect{
			robotcommand.OpenDoor:      doorEffect(robot.DoorOpen),
			robotcommand.CloseDoor:     doorEffect(robot.DoorClosed),
			robotcommand.StartDelivery: startDeliveryEffect,
			robotcommand.StopRobot:     stopRobotEffect,
		},
	}
}

// Apply runs the effect registered for cmdType against the robot and its
// current orders. Unregistered types are a no-op.
func (ce CommandEffects) Apply(
	cmdType robotcommand.Type,
	r *robot.Robot,
	orders []*order.Order,
	report ExecutionReport,
) error {
	effect, ok := ce.effects[cmdType]
	if !ok {
		return nil
	}
	return effect(r, orders, report)
}

// doorEffect updates the robot's door to the state the robot reported, or
// to the requested target when the report carries no parseable door state.
func doorEffect(target robot.DoorState) Effect {
	return func(r *robot.Robot, _ []*order.Order, report ExecutionReport) error {
		return r.SetDoorState(parseDoorResult(report.Result, target))
	}
}

// parseDoorResult extracts a door state from a "door_<OPEN|CLOSED>" result,
// case-insensitive. Absent or unparseable results fall back to the target
// the command asked for.
func parseDoorResult(result string, target robot.DoorState) robot.DoorState {
	lowered := strings.ToLower(strings.TrimSpace(result))
	if !strings.HasPrefix(lowered, "door_") {
		return target
	}

	reported, err := robot.DoorStateFromString(strings.ToUpper(strings.TrimPrefix(lowered, "door_")))
	if err != nil {
		return target
	}
	return reported
}

// startDeliveryEffect begins the delivery run: the robot must be Loading,
// and every Assigned order on board moves to Delivering.
func startDeliveryEffect(r *robot.Robot, orders []*order.Order, report ExecutionReport) error {
	if err := r.StartDelivery(report.Now); err != nil {
		return err
	}

	for _, o := range orders {
		if o.Status() != order.Assigned {
			continue
		}
		if err := o.StartDelivery(); err != nil {
			return err
		}
	}
	return nil
}

// stopRobotEffect halts the robot and reverts every order en route back to
// Assigned.
func stopRobotEffect(r *robot.Robot, orders []*order.Order, _ ExecutionReport) error {
	r.Stop()

	for _, o := range orders {
		if o.Status() != order.Delivering {
			continue
		}
		if err := o.RevertToAssigned(); err != nil {
			return err
		}
	}
	return nil
}
