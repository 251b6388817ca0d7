package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PackageBody carries the package attributes of an order request.
type PackageBody struct {
	Type        string `json:"type"`
	Weight      string `json:"weight,omitempty"`
	Fragile     bool   `json:"fragile,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	StudentID          string      `json:"student_id"`
	StudentName        string      `json:"student_name,omitempty"`
	Package            PackageBody `json:"package"`
	PickupBuilding     string      `json:"pickup_building"`
	PickupInstructions string      `json:"pickup_instructions,omitempty"`
	DeliveryBuilding   string      `json:"delivery_building"`
	DeliveryRoom       string      `json:"delivery_room,omitempty"`
}

// OrderStatusResponse returns the identifier of the created order. The
// handoff token itself is fetched via the single-order read.
type OrderStatusResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// AssignOrderRequest is the body of POST /api/v1/orders/{orderID}/assign.
// Both fields are optional: an absent robot_id selects the first available
// robot, an absent dispatcher_id records a system assignment.
type AssignOrderRequest struct {
	RobotID      string `json:"robot_id,omitempty"`
	DispatcherID string `json:"dispatcher_id,omitempty"`
}

// OrderStatusUpdateRequest is the body of PATCH /api/v1/orders/{orderID}/status.
type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

// PurgeCommandsResponse reports how many terminal commands a retention pass
// removed.
type PurgeCommandsResponse struct {
	Purged int64 `json:"purged"`
}

// CreateRobotRequest is the body of POST /api/v1/robots.
type CreateRobotRequest struct {
	Name string `json:"name"`
}

// CreateRobotResponse returns the identifier of the registered robot.
type CreateRobotResponse struct {
	RobotID string `json:"robot_id"`
}

// ControlRequest is the body of POST /api/v1/robots/{robotID}/control/{action}.
type ControlRequest struct {
	DispatcherID string `json:"dispatcher_id,omitempty"`
}

// ControlResponse acknowledges an issued robot command.
type ControlResponse struct {
	CommandID string `json:"command_id"`
	Status    string `json:"status"`
}

// PendingCommand is one queued command in the poll response.
type PendingCommand struct {
	CommandID string    `json:"command_id"`
	Command   string    `json:"command"`
	SentAt    time.Time `json:"sent_at"`
	SentBy    string    `json:"sent_by,omitempty"`
}

// PollResponse is the body of GET /api/v1/robots/{robotID}/commands.
// TimeoutProcessed reports how many stale commands the scoped sweep failed
// before the queue snapshot was taken.
type PollResponse struct {
	Commands         []PendingCommand `json:"commands"`
	TimeoutProcessed int              `json:"timeout_processed"`
}

// ExecutionResultRequest is the robot's report for one executed command.
type ExecutionResultRequest struct {
	Result string `json:"result"`
}

// TelemetryRequest is the body of POST /api/v1/robots/{robotID}/telemetry.
// Absent fields leave the corresponding attribute untouched.
type TelemetryRequest struct {
	Status       *string `json:"status,omitempty"`
	DoorState    *string `json:"door_state,omitempty"`
	BatteryLevel *int    `json:"battery_level,omitempty"`
	Location     *string `json:"location,omitempty"`
}

// VerifyHandoffRequest is the body of POST /api/v1/handoff/verify. QRData
// carries the scanned token; a token with an empty signature is the minimal
// form printed on the fallback slip.
type VerifyHandoffRequest struct {
	QRData services.HandoffToken `json:"qr_data"`
}

// VerifyHandoffResponse confirms a redeemed pickup.
type VerifyHandoffResponse struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	ScannedAt time.Time `json:"scanned_at"`
}

// Robot is one fleet member in the read responses.
type Robot struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Status            string     `json:"status"`
	DoorState         string     `json:"door_state"`
	BatteryLevel      int        `json:"battery_level"`
	Location          string     `json:"location"`
	DeliveryStartTime *time.Time `json:"delivery_start_time,omitempty"`
	QRWaitStartTime   *time.Time `json:"qr_wait_start_time,omitempty"`
}

// Order is one order in the list read responses.
type Order struct {
	ID               string    `json:"id"`
	StudentID        string    `json:"student_id"`
	RobotID          string    `json:"robot_id,omitempty"`
	Status           string    `json:"status"`
	PackageType      string    `json:"package_type"`
	PickupBuilding   string    `json:"pickup_building"`
	DeliveryBuilding string    `json:"delivery_building"`
	DeliveryRoom     string    `json:"delivery_room,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// OrderDetail is the single-order read response. The handoff fields are
// present only while the token is still redeemable.
type OrderDetail struct {
	Order

	PickupInstructions string     `json:"pickup_instructions,omitempty"`
	HandoffPayload     string     `json:"handoff_payload,omitempty"`
	HandoffSignature   string     `json:"handoff_signature,omitempty"`
	HandoffValid       bool       `json:"handoff_valid"`
	ScannedAt          *time.Time `json:"scanned_at,omitempty"`
}

// toOrder maps the shared order read model to its wire form.
func toOrder(o queries.OrderQueryResponse) Order {
	out := Order{
		ID:               o.ID.String(),
		StudentID:        o.StudentID.String(),
		Status:           o.Status,
		PackageType:      o.PackageType,
		PickupBuilding:   o.PickupBuilding,
		DeliveryBuilding: o.DeliveryBuilding,
		DeliveryRoom:     o.DeliveryRoom,
		CreatedAt:        o.CreatedAt,
	}
	if o.RobotID != nil {
		out.RobotID = o.RobotID.String()
	}
	return out
}
