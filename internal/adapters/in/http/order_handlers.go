package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// idParam parses the :id path parameter as a UUID.
func idParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer_id: "+err.Error())
	}
	storeID, err := kernel.UUIDFromString(req.StoreID)
	if err != nil {
		return badRequest(ctx, "Invalid store_id: "+err.Error())
	}
	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return badRequest(ctx, "Invalid payment_method: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, storeID, paymentMethod,
		req.Subtotal, req.DeliveryFee, req.TaxAmount, req.DiscountAmount,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// RecordPayment handles POST /api/v1/orders/:id/payment.
func (s *Server) RecordPayment(ctx echo.Context) error {
	orderID, err := idParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req RecordPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordPaymentCommand(orderID, req.Succeeded)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/:id/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := idParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req TransitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	targetStatus, err := order.StatusFromString(req.TargetStatus)
	if err != nil {
		return badRequest(ctx, "Invalid target_status: "+err.Error())
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, targetStatus, actorID, req.Note)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignOrder handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := idParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AssignOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var cmd commands.AssignOrderCommand
	if req.AgentID != nil {
		agentID, agentErr := kernel.UUIDFromString(*req.AgentID)
		if agentErr != nil {
			return badRequest(ctx, "Invalid agent_id: "+agentErr.Error())
		}
		cmd, err = commands.NewAssignOrderCommandWithAgent(orderID, agentID)
	} else {
		cmd, err = commands.NewAssignOrderCommand(orderID)
	}
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	created, err := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignmentResponse(created))
}

// ReassignOrder handles POST /api/v1/orders/:id/reassign.
func (s *Server) ReassignOrder(ctx echo.Context) error {
	orderID, err := idParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ReassignOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReassignOrderCommand(orderID, req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	replacement, err := s.reassignOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignmentResponse(replacement))
}

// AcceptAssignment handles POST /api/v1/orders/:id/accept.
func (s *Server) AcceptAssignment(ctx echo.Context) error {
	orderID, err := idParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AcceptAssignmentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return badRequest(ctx, "Invalid agent_id: "+err.Error())
	}

	cmd, err := commands.NewAcceptAssignmentCommand(orderID, agentID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.acceptAssignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordLocationPing handles POST /api/v1/orders/:id/location.
func (s *Server) RecordLocationPing(ctx echo.Context) error {
	orderID, err := idParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req LocationPingRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return badRequest(ctx, "Invalid agent_id: "+err.Error())
	}
	point, err := kernel.NewGeoPoint(req.Lat, req.Lon)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}

	cmd, err := commands.NewRecordLocationPingCommand(orderID, agentID, point, req.SpeedKmh, req.BatteryLevel)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.recordLocationPingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetUncompletedOrders handles GET /api/v1/orders/uncompleted.
func (s *Server) GetUncompletedOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]OrderSummaryResponse, len(orders))
	for i, ord := range orders {
		response[i] = OrderSummaryResponse{
			ID:            ord.ID.String(),
			OrderNumber:   ord.OrderNumber,
			StoreID:       ord.StoreID.String(),
			Status:        ord.Status,
			PaymentStatus: ord.PaymentStatus,
			TotalAmount:   ord.TotalAmount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := idParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	history, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]OrderHistoryEntryResponse, len(history))
	for i, entry := range history {
		response[i] = OrderHistoryEntryResponse{
			FromStatus: entry.FromStatus,
			ToStatus:   entry.ToStatus,
			ActorID:    entry.ActorID.String(),
			Note:       entry.Note,
			CreatedAt:  entry.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetNextStatuses handles GET /api/v1/orders/:id/next-statuses.
func (s *Server) GetNextStatuses(ctx echo.Context) error {
	orderID, err := idParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetNextStatusesQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.getNextStatusesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, NextStatusesResponse{
		OrderID:       result.OrderID.String(),
		CurrentStatus: result.CurrentStatus,
		NextStatuses:  result.NextStatuses,
	})
}

func toAssignmentResponse(a *assignment.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:                   a.ID().String(),
		OrderID:              a.OrderID().String(),
		AgentID:              a.AgentID().String(),
		Status:               a.Status().String(),
		EstimatedDistanceKm:  a.EstimatedDistanceKm(),
		EstimatedTimeMinutes: a.EstimatedTimeMinutes(),
		AssignedAt:           a.AssignedAt(),
	}
}
