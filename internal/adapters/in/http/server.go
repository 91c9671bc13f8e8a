// Package http exposes the fulfillment engine over a REST API.
// Handlers translate JSON requests into commands and queries; all business
// rules live in the application and domain layers.
package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	recordPaymentHandler        commands.RecordPaymentCommandHandler
	transitionOrderHandler      commands.TransitionOrderCommandHandler
	assignOrderHandler          commands.AssignOrderCommandHandler
	reassignOrderHandler        commands.ReassignOrderCommandHandler
	acceptAssignmentHandler     commands.AcceptAssignmentCommandHandler
	issueHandoverCodeHandler    commands.IssueHandoverCodeCommandHandler
	verifyHandoverCodeHandler   commands.VerifyHandoverCodeCommandHandler
	issueDeliveryCodeHandler    commands.IssueDeliveryCodeCommandHandler
	verifyDeliveryCodeHandler   commands.VerifyDeliveryCodeCommandHandler
	recordLocationPingHandler   commands.RecordLocationPingCommandHandler
	registerAgentHandler        commands.RegisterAgentCommandHandler
	setAgentAvailabilityHandler commands.SetAgentAvailabilityCommandHandler

	// Query handlers
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
	getOrderHistoryHandler      queries.GetOrderHistoryQueryHandler
	getNextStatusesHandler      queries.GetNextStatusesQueryHandler
	getAllAgentsHandler         queries.GetAllAgentsQueryHandler
}

// ServerHandlers bundles the use case handlers the server dispatches to.
type ServerHandlers struct {
	CreateOrder          commands.CreateOrderCommandHandler
	RecordPayment        commands.RecordPaymentCommandHandler
	TransitionOrder      commands.TransitionOrderCommandHandler
	AssignOrder          commands.AssignOrderCommandHandler
	ReassignOrder        commands.ReassignOrderCommandHandler
	AcceptAssignment     commands.AcceptAssignmentCommandHandler
	IssueHandoverCode    commands.IssueHandoverCodeCommandHandler
	VerifyHandoverCode   commands.VerifyHandoverCodeCommandHandler
	IssueDeliveryCode    commands.IssueDeliveryCodeCommandHandler
	VerifyDeliveryCode   commands.VerifyDeliveryCodeCommandHandler
	RecordLocationPing   commands.RecordLocationPingCommandHandler
	RegisterAgent        commands.RegisterAgentCommandHandler
	SetAgentAvailability commands.SetAgentAvailabilityCommandHandler

	GetUncompletedOrders queries.GetUncompletedOrdersQueryHandler
	GetOrderHistory      queries.GetOrderHistoryQueryHandler
	GetNextStatuses      queries.GetNextStatusesQueryHandler
	GetAllAgents         queries.GetAllAgentsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers ServerHandlers) *Server {
	return &Server{
		createOrderHandler:          handlers.CreateOrder,
		recordPaymentHandler:        handlers.RecordPayment,
		transitionOrderHandler:      handlers.TransitionOrder,
		assignOrderHandler:          handlers.AssignOrder,
		reassignOrderHandler:        handlers.ReassignOrder,
		acceptAssignmentHandler:     handlers.AcceptAssignment,
		issueHandoverCodeHandler:    handlers.IssueHandoverCode,
		verifyHandoverCodeHandler:   handlers.VerifyHandoverCode,
		issueDeliveryCodeHandler:    handlers.IssueDeliveryCode,
		verifyDeliveryCodeHandler:   handlers.VerifyDeliveryCode,
		recordLocationPingHandler:   handlers.RecordLocationPing,
		registerAgentHandler:        handlers.RegisterAgent,
		setAgentAvailabilityHandler: handlers.SetAgentAvailability,
		getUncompletedOrdersHandler: handlers.GetUncompletedOrders,
		getOrderHistoryHandler:      handlers.GetOrderHistory,
		getNextStatusesHandler:      handlers.GetNextStatuses,
		getAllAgentsHandler:         handlers.GetAllAgents,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/uncompleted", s.GetUncompletedOrders)
	api.POST("/orders/:id/payment", s.RecordPayment)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/assign", s.AssignOrder)
	api.POST("/orders/:id/reassign", s.ReassignOrder)
	api.POST("/orders/:id/accept", s.AcceptAssignment)
	api.POST("/orders/:id/location", s.RecordLocationPing)
	api.POST("/orders/:id/handover-code", s.IssueHandoverCode)
	api.POST("/orders/:id/handover-code/verify", s.VerifyHandoverCode)
	api.POST("/orders/:id/delivery-code", s.IssueDeliveryCode)
	api.POST("/orders/:id/delivery-code/verify", s.VerifyDeliveryCode)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.GET("/orders/:id/next-statuses", s.GetNextStatuses)

	api.GET("/agents", s.GetAllAgents)
	api.POST("/agents", s.RegisterAgent)
	api.PATCH("/agents/:id/availability", s.SetAgentAvailability)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// fail maps a use case error to an HTTP error response.
func fail(ctx echo.Context, err error) error {
	code := statusForError(err)
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

// badRequest responds with 400 and the given message.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// statusForError classifies use case errors into HTTP status codes.
// Unknown errors surface as 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound

	case errors.Is(err, order.ErrPaymentRequired):
		return http.StatusPaymentRequired

	case errors.Is(err, commands.ErrInvalidCode),
		errors.Is(err, commands.ErrCodeExpiredOrMissing):
		return http.StatusUnprocessableEntity

	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrHandoverCodeAlreadySet),
		errors.Is(err, order.ErrDeliveryCodeAlreadySet),
		errors.Is(err, commands.ErrOrderNotReadyForHandover),
		errors.Is(err, commands.ErrOrderNotOutForDelivery),
		errors.Is(err, commands.ErrNoAgentAvailable),
		errors.Is(err, commands.ErrAgentUnavailable),
		errors.Is(err, commands.ErrAssignmentAgentMismatch),
		errors.Is(err, commands.ErrPingAgentMismatch),
		errors.Is(err, commands.ErrPingBeforeAcceptance),
		errors.Is(err, agent.ErrAgentAtCapacity),
		errors.Is(err, assignment.ErrAssignmentAlreadyTerminal),
		errors.Is(err, assignment.ErrReassignmentNotAllowed),
		errors.Is(err, assignment.ErrInvalidAssignmentTransition):
		return http.StatusConflict

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
