package cmd

import (
	"log/slog"

	"dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/push"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config        Config
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	hub           *push.Hub
	authenticator services.HandoffAuthenticator
	logger        *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	authenticator, err := services.NewHandoffAuthenticator(config.HandoffSecret)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:           push.NewHub(logger),
		authenticator: authenticator,
		logger:        logger,
	}, nil
}

// Hub exposes the in-process command hint channel. The HTTP poll endpoint
// subscribes to it and the issue-command handler publishes to it.
func (c *CompositionRoot) Hub() *push.Hub {
	return c.hub
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.authenticator)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkArrivedCommandHandler() commands.MarkArrivedCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkArrivedCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateVerifyHandoffCommandHandler() commands.VerifyHandoffCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyHandoffCommandHandler(f, c.authenticator)
}

func (c *CompositionRoot) CreateCreateRobotCommandHandler() commands.CreateRobotCommandHandler {
	var f commands.RobotUoWFactory = FuncRobotUoWFactory(func() commands.RobotUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRobotCommandHandler(f)
}

func (c *CompositionRoot) CreateIssueRobotCommandCommandHandler() commands.IssueRobotCommandCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewIssueRobotCommandCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateReportExecutionCommandHandler() commands.ReportExecutionCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportExecutionCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateRobotTelemetryCommandHandler() commands.UpdateRobotTelemetryCommandHandler {
	var f commands.RobotUoWFactory = FuncRobotUoWFactory(func() commands.RobotUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateRobotTelemetryCommandHandler(f)
}

func (c *CompositionRoot) CreateAutoReturnCommandHandler() commands.AutoReturnCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAutoReturnCommandHandler(f)
}

func (c *CompositionRoot) CreateSweepCommandTimeoutsCommandHandler() commands.SweepCommandTimeoutsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepCommandTimeoutsCommandHandler(f, c.config.CommandTimeout)
}

func (c *CompositionRoot) CreateExpirePickupWindowsCommandHandler() commands.ExpirePickupWindowsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpirePickupWindowsCommandHandler(f, c.config.PickupWaitTimeout)
}

func (c *CompositionRoot) CreatePurgeCommandsCommandHandler() commands.PurgeCommandsCommandHandler {
	var f commands.CommandUoWFactory = FuncCommandUoWFactory(func() commands.CommandUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPurgeCommandsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetRobotsQueryHandler() queries.GetRobotsQueryHandler {
	return queries.NewGetRobotsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRobotOrdersQueryHandler() queries.GetRobotOrdersQueryHandler {
	return queries.NewGetRobotOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingCommandsQueryHandler() queries.GetPendingCommandsQueryHandler {
	return queries.NewGetPendingCommandsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

// CreateHTTPHandlers bundles every handler the REST surface needs.
func (c *CompositionRoot) CreateHTTPHandlers() http.Handlers {
	return http.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		AssignOrder:       c.CreateAssignOrderCommandHandler(),
		MarkArrived:       c.CreateMarkArrivedCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		VerifyHandoff:     c.CreateVerifyHandoffCommandHandler(),
		CreateRobot:       c.CreateCreateRobotCommandHandler(),
		IssueCommand:      c.CreateIssueRobotCommandCommandHandler(),
		ReportExecution:   c.CreateReportExecutionCommandHandler(),
		UpdateTelemetry:   c.CreateUpdateRobotTelemetryCommandHandler(),
		AutoReturn:        c.CreateAutoReturnCommandHandler(),
		SweepTimeouts:     c.CreateSweepCommandTimeoutsCommandHandler(),
		PurgeCommands:     c.CreatePurgeCommandsCommandHandler(),

		GetRobots:          c.CreateGetRobotsQueryHandler(),
		GetActiveOrders:    c.CreateGetActiveOrdersQueryHandler(),
		GetRobotOrders:     c.CreateGetRobotOrdersQueryHandler(),
		GetPendingCommands: c.CreateGetPendingCommandsQueryHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
	}
}

// CreateJobManager wires the background sweepers.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSweepCommandTimeoutsCommandHandler(),
		c.CreateExpirePickupWindowsCommandHandler(),
		c.CreatePurgeCommandsCommandHandler(),
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRobotUoWFactory func() commands.RobotUoW

func (f FuncRobotUoWFactory) Create() commands.RobotUoW {
	return f()
}

type FuncCommandUoWFactory func() commands.CommandUoW

func (f FuncCommandUoWFactory) Create() commands.CommandUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
