package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/payments"
	"fulfillment/internal/adapters/out/postgres"
	redisout "fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/adapters/out/routing"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/clock"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers.
type CompositionRoot struct {
	config Config

	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	ttlStore        ports.TTLStore
	notifier        ports.Notifier
	paymentProvider ports.PaymentProvider
	routeEstimator  ports.RouteEstimator
	clock           ports.Clock
	selector        services.AgentSelector
}

// NewCompositionRoot creates the object graph root from opened connections.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	routeDistanceKm, err := decimal.NewFromString(config.RouteDistanceKm)
	if err != nil {
		routeDistanceKm = decimal.NewFromFloat(5.0)
	}

	return CompositionRoot{
		config:          config,
		gormDB:          gormDB,
		uowFactory:      *postgres.NewGormUnitOfWorkFactory(gormDB),
		ttlStore:        redisout.NewTTLStore(redisClient),
		notifier:        notify.NewSlogNotifier(logger),
		paymentProvider: payments.NewStaticProvider(false),
		routeEstimator:  routing.NewFixedEstimator(routeDistanceKm, config.RouteTimeMinutes),
		clock:           clock.NewSystem(),
		selector:        services.NewAgentSelector(),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) agentUoWFactory() commands.AgentUoWFactory {
	return FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.orderUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(
		c.fullUoWFactory(), c.paymentProvider, c.notifier, c.clock,
	)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(
		c.fullUoWFactory(), c.selector, c.routeEstimator, c.notifier, c.clock,
	)
}

func (c *CompositionRoot) CreateReassignOrderCommandHandler() commands.ReassignOrderCommandHandler {
	return commands.NewReassignOrderCommandHandler(
		c.fullUoWFactory(), c.selector, c.routeEstimator, c.notifier, c.clock,
	)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(c.fullUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateIssueHandoverCodeCommandHandler() commands.IssueHandoverCodeCommandHandler {
	return commands.NewIssueHandoverCodeCommandHandler(
		c.fullUoWFactory(), c.ttlStore, c.config.HandoverCodeTTL, c.config.CodeLength,
	)
}

func (c *CompositionRoot) CreateVerifyHandoverCodeCommandHandler() commands.VerifyHandoverCodeCommandHandler {
	return commands.NewVerifyHandoverCodeCommandHandler(
		c.fullUoWFactory(), c.ttlStore, c.notifier, c.clock,
	)
}

func (c *CompositionRoot) CreateIssueDeliveryCodeCommandHandler() commands.IssueDeliveryCodeCommandHandler {
	return commands.NewIssueDeliveryCodeCommandHandler(
		c.orderUoWFactory(), c.ttlStore, c.config.DeliveryCodeTTL, c.config.CodeLength,
	)
}

func (c *CompositionRoot) CreateVerifyDeliveryCodeCommandHandler() commands.VerifyDeliveryCodeCommandHandler {
	return commands.NewVerifyDeliveryCodeCommandHandler(
		c.fullUoWFactory(), c.ttlStore, c.notifier, c.clock,
	)
}

func (c *CompositionRoot) CreateRecordLocationPingCommandHandler() commands.RecordLocationPingCommandHandler {
	return commands.NewRecordLocationPingCommandHandler(c.fullUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateRegisterAgentCommandHandler() commands.RegisterAgentCommandHandler {
	return commands.NewRegisterAgentCommandHandler(c.agentUoWFactory())
}

func (c *CompositionRoot) CreateSetAgentAvailabilityCommandHandler() commands.SetAgentAvailabilityCommandHandler {
	return commands.NewSetAgentAvailabilityCommandHandler(c.agentUoWFactory())
}

func (c *CompositionRoot) CreateSweepAcceptanceTimeoutsCommandHandler() commands.SweepAcceptanceTimeoutsCommandHandler {
	return commands.NewSweepAcceptanceTimeoutsCommandHandler(
		c.fullUoWFactory(), c.selector, c.routeEstimator, c.ttlStore,
		c.notifier, c.clock, c.config.AcceptanceWindow, c.config.AlertTTL,
	)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNextStatusesQueryHandler() queries.GetNextStatusesQueryHandler {
	return queries.NewGetNextStatusesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllAgentsQueryHandler() queries.GetAllAgentsQueryHandler {
	return queries.NewGetAllAgentsQueryHandler(c.gormDB)
}

// CreateServerHandlers bundles all handlers the HTTP server needs.
func (c *CompositionRoot) CreateServerHandlers() httpin.ServerHandlers {
	return httpin.ServerHandlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		RecordPayment:        c.CreateRecordPaymentCommandHandler(),
		TransitionOrder:      c.CreateTransitionOrderCommandHandler(),
		AssignOrder:          c.CreateAssignOrderCommandHandler(),
		ReassignOrder:        c.CreateReassignOrderCommandHandler(),
		AcceptAssignment:     c.CreateAcceptAssignmentCommandHandler(),
		IssueHandoverCode:    c.CreateIssueHandoverCodeCommandHandler(),
		VerifyHandoverCode:   c.CreateVerifyHandoverCodeCommandHandler(),
		IssueDeliveryCode:    c.CreateIssueDeliveryCodeCommandHandler(),
		VerifyDeliveryCode:   c.CreateVerifyDeliveryCodeCommandHandler(),
		RecordLocationPing:   c.CreateRecordLocationPingCommandHandler(),
		RegisterAgent:        c.CreateRegisterAgentCommandHandler(),
		SetAgentAvailability: c.CreateSetAgentAvailabilityCommandHandler(),

		GetUncompletedOrders: c.CreateGetUncompletedOrdersQueryHandler(),
		GetOrderHistory:      c.CreateGetOrderHistoryQueryHandler(),
		GetNextStatuses:      c.CreateGetNextStatusesQueryHandler(),
		GetAllAgents:         c.CreateGetAllAgentsQueryHandler(),
	}
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAssignOrderCommandHandler(),
		c.CreateSweepAcceptanceTimeoutsCommandHandler(),
		c.orderUoWFactory(),
		c.config.SweepSchedule,
		logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
