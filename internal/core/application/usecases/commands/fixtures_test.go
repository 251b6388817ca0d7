package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/robot"
	"dispatch/internal/core/domain/model/robotcommand"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

const fixtureSecret = "fixture-secret"

func fixtureAuthenticator(t *testing.T) services.HandoffAuthenticator {
	t.Helper()
	auth, err := services.NewHandoffAuthenticator(fixtureSecret)
	require.NoError(t, err)
	return auth
}

func fixturePackage(t *testing.T) order.PackageInfo {
	t.Helper()
	pkg, err := order.NewPackageInfo("documents", "1kg", false, "exam papers")
	require.NoError(t, err)
	return pkg
}

// fixtureOrder builds an order advanced to the given status, with a signed
// handoff token attached and assigned to robotID when past Pending.
func fixtureOrder(t *testing.T, status order.Status, robotID kernel.UUID) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), fixturePackage(t),
		"Library", "front desk", "Dorm 5", "512", time.Now().UTC(),
	)
	require.NoError(t, err)

	signed, err := fixtureAuthenticator(t).Generate(services.HandoffPayload{
		OrderID:   o.ID().String(),
		StudentID: o.StudentID().String(),
	})
	require.NoError(t, err)
	require.NoError(t, o.AttachHandoff(signed.Payload, signed.Signature))

	if status == order.Pending {
		return o
	}
	require.NoError(t, o.Assign(robotID, nil))
	if status == order.Assigned {
		return o
	}
	require.NoError(t, o.StartDelivery())
	if status == order.Delivering {
		return o
	}
	require.NoError(t, o.MarkDelivered())
	require.Equal(t, order.Delivered, status, "unsupported fixture status")
	return o
}

func fixtureRobot(t *testing.T, status robot.Status) *robot.Robot {
	t.Helper()

	r, err := robot.NewRobot(kernel.NewUUID(), "WALL-E")
	require.NoError(t, err)

	switch status {
	case robot.Idle:
	case robot.Loading:
		require.NoError(t, r.BeginLoading())
	case robot.Delivering:
		require.NoError(t, r.BeginLoading())
		require.NoError(t, r.StartDelivery(time.Now().UTC()))
	default:
		require.NoError(t, r.SetStatus(status))
	}
	return r
}

func fixturePendingCommand(t *testing.T, robotID kernel.UUID, cmdType robotcommand.Type) *robotcommand.RobotCommand {
	t.Helper()
	cmd, err := robotcommand.NewRobotCommand(kernel.NewUUID(), robotID, cmdType, nil, time.Now().UTC())
	require.NoError(t, err)
	return cmd
}
