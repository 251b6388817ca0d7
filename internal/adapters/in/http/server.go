// Package http exposes the dispatch engine over REST. Handlers translate
// between the wire representation and the application commands and queries;
// every business rule stays behind them.
package http

import (
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/robot"
	"dispatch/internal/core/domain/model/robotcommand"

	"github.com/labstack/echo/v4"
)

// maxPollWait caps the long-poll hold so a robot with no work still gets an
// answer well inside common proxy timeouts.
const maxPollWait = 25 * time.Second

// PollHintSource lets the poll endpoint wait for a push hint instead of
// returning an empty queue immediately.
type PollHintSource interface {
	Subscribe(robotID kernel.UUID) (<-chan struct{}, func())
}

// Handlers bundles the application entry points the server dispatches to.
type Handlers struct {
	CreateOrder       commands.CreateOrderCommandHandler
	AssignOrder       commands.AssignOrderCommandHandler
	MarkArrived       commands.MarkArrivedCommandHandler
	UpdateOrderStatus commands.UpdateOrderStatusCommandHandler
	VerifyHandoff     commands.VerifyHandoffCommandHandler
	CreateRobot       commands.CreateRobotCommandHandler
	IssueCommand      commands.IssueRobotCommandCommandHandler
	ReportExecution   commands.ReportExecutionCommandHandler
	UpdateTelemetry   commands.UpdateRobotTelemetryCommandHandler
	AutoReturn        commands.AutoReturnCommandHandler
	SweepTimeouts     commands.SweepCommandTimeoutsCommandHandler
	PurgeCommands     commands.PurgeCommandsCommandHandler

	GetRobots          queries.GetRobotsQueryHandler
	GetActiveOrders    queries.GetActiveOrdersQueryHandler
	GetRobotOrders     queries.GetRobotOrdersQueryHandler
	GetPendingCommands queries.GetPendingCommandsQueryHandler
	GetOrder           queries.GetOrderQueryHandler
}

// Server wires the REST surface to the application layer.
type Server struct {
	handlers Handlers
	hints    PollHintSource
}

// NewServer creates the HTTP server. hints may be nil; the poll endpoint
// then answers immediately instead of long-polling.
func NewServer(handlers Handlers, hints PollHintSource) *Server {
	return &Server{
		handlers: handlers,
		hints:    hints,
	}
}

// RegisterRoutes mounts every endpoint on the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/orders/:orderID/assign", s.AssignOrder)
	api.POST("/orders/:orderID/arrived", s.MarkArrived)
	api.PATCH("/orders/:orderID/status", s.UpdateOrderStatus)

	api.GET("/robots", s.GetRobots)
	api.POST("/robots", s.CreateRobot)
	api.GET("/robots/:robotID/orders", s.GetRobotOrders)
	api.GET("/robots/:robotID/commands", s.PollCommands)
	api.POST("/robots/:robotID/commands/:commandID/result", s.ReportExecution)
	api.POST("/robots/:robotID/control/:action", s.Control)
	api.POST("/robots/:robotID/emergency", s.Emergency)
	api.POST("/robots/:robotID/telemetry", s.UpdateTelemetry)
	api.POST("/robots/:robotID/auto-return", s.AutoReturn)

	api.POST("/handoff/verify", s.VerifyHandoff)

	api.POST("/maintenance/purge-commands", s.PurgeCommands)
}

// Health reports liveness.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	studentID, err := kernel.UUIDFromString(req.StudentID)
	if err != nil {
		return writeError(ctx, err)
	}

	pkg, err := orderPackage(req.Package)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, studentID,
		req.StudentName,
		pkg,
		req.PickupBuilding, req.PickupInstructions,
		req.DeliveryBuilding, req.DeliveryRoom,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderStatusResponse{
		OrderID: orderID.String(),
		Status:  "PENDING",
	})
}

// AssignOrder handles POST /api/v1/orders/{orderID}/assign.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req AssignOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	robotID, err := optionalUUID(req.RobotID)
	if err != nil {
		return writeError(ctx, err)
	}
	dispatcherID, err := optionalUUID(req.DispatcherID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, robotID, dispatcherID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.AssignOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatusResponse{
		OrderID: orderID.String(),
		Status:  "ASSIGNED",
	})
}

// MarkArrived handles POST /api/v1/orders/{orderID}/arrived.
func (s *Server) MarkArrived(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkArrivedCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.MarkArrived.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{orderID}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req OrderStatusUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatusResponse{
		OrderID: orderID.String(),
		Status:  status.String(),
	})
}

// PurgeCommands handles POST /api/v1/maintenance/purge-commands, the manual
// trigger for the command-retention pass. Safe to call repeatedly.
func (s *Server) PurgeCommands(ctx echo.Context) error {
	purged, err := s.handlers.PurgeCommands.Handle(ctx.Request().Context(), commands.NewPurgeCommandsCommand())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PurgeCommandsResponse{Purged: purged})
}

// GetOrder handles GET /api/v1/orders/{orderID}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderDetail{
		Order:              toOrder(result.OrderQueryResponse),
		PickupInstructions: result.PickupInstructions,
		HandoffPayload:     result.HandoffPayload,
		HandoffSignature:   result.HandoffSignature,
		HandoffValid:       result.HandoffValid,
		ScannedAt:          result.ScannedAt,
	})
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.handlers.GetActiveOrders.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRobots handles GET /api/v1/robots.
func (s *Server) GetRobots(ctx echo.Context) error {
	robots, err := s.handlers.GetRobots.Handle(ctx.Request().Context(), queries.NewGetRobotsQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Robot, len(robots))
	for i, r := range robots {
		response[i] = Robot{
			ID:                r.ID.String(),
			Name:              r.Name,
			Status:            r.Status,
			DoorState:         r.DoorState,
			BatteryLevel:      r.BatteryLevel,
			Location:          r.Location,
			DeliveryStartTime: r.DeliveryStartTime,
			QRWaitStartTime:   r.QRWaitStartTime,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateRobot handles POST /api/v1/robots.
func (s *Server) CreateRobot(ctx echo.Context) error {
	var req CreateRobotRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	robotID := kernel.NewUUID()
	cmd, err := commands.NewCreateRobotCommand(robotID, req.Name)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.CreateRobot.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateRobotResponse{RobotID: robotID.String()})
}

// GetRobotOrders handles GET /api/v1/robots/{robotID}/orders.
func (s *Server) GetRobotOrders(ctx echo.Context) error {
	robotID, err := kernel.UUIDFromString(ctx.Param("robotID"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetRobotOrdersQuery(robotID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.handlers.GetRobotOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// PollCommands handles GET /api/v1/robots/{robotID}/commands. A scoped
// sweeper pass runs first so stale commands never reach the robot. With
// wait=true and an empty queue, the request holds until a push hint arrives
// or the wait cap expires.
func (s *Server) PollCommands(ctx echo.Context) error {
	robotID, err := kernel.UUIDFromString(ctx.Param("robotID"))
	if err != nil {
		return writeError(ctx, err)
	}

	sweepCmd, err := commands.NewSweepCommandTimeoutsCommand(&robotID)
	if err != nil {
		return writeError(ctx, err)
	}

	timedOut, err := s.handlers.SweepTimeouts.Handle(ctx.Request().Context(), sweepCmd)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetPendingCommandsQuery(robotID)
	if err != nil {
		return writeError(ctx, err)
	}

	pending, err := s.handlers.GetPendingCommands.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	if len(pending) == 0 && ctx.QueryParam("wait") == "true" && s.hints != nil {
		pending, err = s.waitForCommands(ctx, robotID, query)
		if err != nil {
			return writeError(ctx, err)
		}
	}

	response := PollResponse{
		Commands:         make([]PendingCommand, len(pending)),
		TimeoutProcessed: timedOut,
	}
	for i, p := range pending {
		cmd := PendingCommand{
			CommandID: p.CommandID.String(),
			Command:   p.Command,
			SentAt:    p.SentAt,
		}
		if p.SentBy != nil {
			cmd.SentBy = p.SentBy.String()
		}
		response.Commands[i] = cmd
	}

	return ctx.JSON(http.StatusOK, response)
}

// waitForCommands blocks until a push hint, the wait cap, or client
// disconnect, then takes a fresh queue snapshot.
func (s *Server) waitForCommands(
	ctx echo.Context,
	robotID kernel.UUID,
	query queries.GetPendingCommandsQuery,
) ([]queries.GetPendingCommandsQueryResponse, error) {
	hint, cancel := s.hints.Subscribe(robotID)
	defer cancel()

	timer := time.NewTimer(maxPollWait)
	defer timer.Stop()

	reqCtx := ctx.Request().Context()
	select {
	case <-hint:
	case <-timer.C:
		return nil, nil
	case <-reqCtx.Done():
		return nil, nil
	}

	return s.handlers.GetPendingCommands.Handle(reqCtx, query)
}

// ReportExecution handles POST /api/v1/robots/{robotID}/commands/{commandID}/result.
func (s *Server) ReportExecution(ctx echo.Context) error {
	if _, err := kernel.UUIDFromString(ctx.Param("robotID")); err != nil {
		return writeError(ctx, err)
	}

	commandID, err := kernel.UUIDFromString(ctx.Param("commandID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req ExecutionResultRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReportExecutionCommand(commandID, req.Result)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.ReportExecution.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Control handles POST /api/v1/robots/{robotID}/control/{action}. The
// emergency door release is acknowledged as already completed; every other
// action queues for the next poll.
func (s *Server) Control(ctx echo.Context) error {
	cmdType, err := robotcommand.TypeFromString(ctx.Param("action"))
	if err != nil {
		return writeError(ctx, err)
	}

	return s.issueCommand(ctx, cmdType)
}

// Emergency handles POST /api/v1/robots/{robotID}/emergency, the dedicated
// surface for the physical emergency button.
func (s *Server) Emergency(ctx echo.Context) error {
	return s.issueCommand(ctx, robotcommand.EmergencyOpenDoor)
}

func (s *Server) issueCommand(ctx echo.Context, cmdType robotcommand.Type) error {
	robotID, err := kernel.UUIDFromString(ctx.Param("robotID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req ControlRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	dispatcherID, err := optionalUUID(req.DispatcherID)
	if err != nil {
		return writeError(ctx, err)
	}

	commandID := kernel.NewUUID()
	cmd, err := commands.NewIssueRobotCommandCommand(commandID, robotID, cmdType, dispatcherID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.IssueCommand.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	status := robotcommand.Pending
	if cmdType == robotcommand.EmergencyOpenDoor {
		status = robotcommand.Completed
	}

	return ctx.JSON(http.StatusCreated, ControlResponse{
		CommandID: commandID.String(),
		Status:    status.String(),
	})
}

// UpdateTelemetry handles POST /api/v1/robots/{robotID}/telemetry.
func (s *Server) UpdateTelemetry(ctx echo.Context) error {
	robotID, err := kernel.UUIDFromString(ctx.Param("robotID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req TelemetryRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	var status *robot.Status
	if req.Status != nil {
		parsed, parseErr := robot.StatusFromString(*req.Status)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}
		status = &parsed
	}

	var doorState *robot.DoorState
	if req.DoorState != nil {
		parsed, parseErr := robot.DoorStateFromString(*req.DoorState)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}
		doorState = &parsed
	}

	cmd, err := commands.NewUpdateRobotTelemetryCommand(robotID, status, doorState, req.BatteryLevel, req.Location)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.UpdateTelemetry.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AutoReturn handles POST /api/v1/robots/{robotID}/auto-return, the manual
// trigger for sending a robot home and cancelling its undelivered cargo.
func (s *Server) AutoReturn(ctx echo.Context) error {
	robotID, err := kernel.UUIDFromString(ctx.Param("robotID"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAutoReturnCommand(robotID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.AutoReturn.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// VerifyHandoff handles POST /api/v1/handoff/verify.
func (s *Server) VerifyHandoff(ctx echo.Context) error {
	var req VerifyHandoffRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewVerifyHandoffCommand(req.QRData)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.handlers.VerifyHandoff.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, VerifyHandoffResponse{
		OrderID:   result.OrderID.String(),
		Status:    result.Status.String(),
		ScannedAt: result.ScannedAt,
	})
}

// orderPackage maps the wire package body to the domain value object.
func orderPackage(body PackageBody) (order.PackageInfo, error) {
	return order.NewPackageInfo(body.Type, body.Weight, body.Fragile, body.Description)
}

// optionalUUID parses an optional identifier, mapping "" to nil.
func optionalUUID(raw string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}

	return &id, nil
}
