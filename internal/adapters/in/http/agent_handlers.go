package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// RegisterAgent handles POST /api/v1/agents.
func (s *Server) RegisterAgent(ctx echo.Context) error {
	var req RegisterAgentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	storeID, err := kernel.UUIDFromString(req.StoreID)
	if err != nil {
		return badRequest(ctx, "Invalid store_id: "+err.Error())
	}
	vehicleType, err := agent.VehicleTypeFromString(req.VehicleType)
	if err != nil {
		return badRequest(ctx, "Invalid vehicle_type: "+err.Error())
	}

	agentID := kernel.NewUUID()
	cmd, err := commands.NewRegisterAgentCommand(
		agentID, storeID, req.Name, req.Phone, vehicleType, req.MaxConcurrent,
	)
	if err != nil {
		return badRequest(ctx, "Invalid agent data: "+err.Error())
	}

	if err = s.registerAgentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: agentID.String()})
}

// GetAllAgents handles GET /api/v1/agents?store_id=.
func (s *Server) GetAllAgents(ctx echo.Context) error {
	storeID, err := kernel.UUIDFromString(ctx.QueryParam("store_id"))
	if err != nil {
		return badRequest(ctx, "Invalid store_id: "+err.Error())
	}

	query, err := queries.NewGetAllAgentsQuery(storeID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	agents, err := s.getAllAgentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]AgentResponse, len(agents))
	for i, a := range agents {
		response[i] = AgentResponse{
			ID:                   a.ID.String(),
			Name:                 a.Name,
			Phone:                a.Phone,
			VehicleType:          a.VehicleType,
			OperationalStatus:    a.OperationalStatus,
			IsAvailable:          a.IsAvailable,
			CurrentAssignments:   a.CurrentAssignments,
			MaxConcurrent:        a.MaxConcurrent,
			TotalDeliveries:      a.TotalDeliveries,
			SuccessfulDeliveries: a.SuccessfulDeliveries,
			SuccessRate:          a.SuccessRate,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SetAgentAvailability handles PATCH /api/v1/agents/:id/availability.
func (s *Server) SetAgentAvailability(ctx echo.Context) error {
	agentID, err := idParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid agent id")
	}

	var req SetAgentAvailabilityRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	operationalStatus, err := agent.OperationalStatusFromString(req.OperationalStatus)
	if err != nil {
		return badRequest(ctx, "Invalid operational_status: "+err.Error())
	}

	cmd, err := commands.NewSetAgentAvailabilityCommand(agentID, req.Available, operationalStatus)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.setAgentAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
