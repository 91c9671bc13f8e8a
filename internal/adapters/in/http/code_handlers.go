package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// IssueHandoverCode handles POST /api/v1/orders/:id/handover-code.
// The code is shown on the merchant's packing screen and read to the
// arriving courier.
func (s *Server) IssueHandoverCode(ctx echo.Context) error {
	orderID, err := idParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewIssueHandoverCodeCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	code, err := s.issueHandoverCodeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CodeResponse{Code: code})
}

// VerifyHandoverCode handles POST /api/v1/orders/:id/handover-code/verify.
func (s *Server) VerifyHandoverCode(ctx echo.Context) error {
	orderID, err := idParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req VerifyHandoverCodeRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewVerifyHandoverCodeCommand(orderID, req.Code)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.verifyHandoverCodeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// IssueDeliveryCode handles POST /api/v1/orders/:id/delivery-code.
// The code is sent to the customer once the order is out for delivery.
func (s *Server) IssueDeliveryCode(ctx echo.Context) error {
	orderID, err := idParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewIssueDeliveryCodeCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	code, err := s.issueDeliveryCodeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CodeResponse{Code: code})
}

// VerifyDeliveryCode handles POST /api/v1/orders/:id/delivery-code/verify.
// A successful verification completes the delivery and records the proof.
func (s *Server) VerifyDeliveryCode(ctx echo.Context) error {
	orderID, err := idParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req VerifyDeliveryCodeRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	deliveryMethod, err := assignment.DeliveryMethodFromString(req.DeliveryMethod)
	if err != nil {
		return badRequest(ctx, "Invalid delivery_method: "+err.Error())
	}

	var location *kernel.GeoPoint
	if req.Lat != nil && req.Lon != nil {
		point, pointErr := kernel.NewGeoPoint(*req.Lat, *req.Lon)
		if pointErr != nil {
			return badRequest(ctx, "Invalid location: "+pointErr.Error())
		}
		location = &point
	}

	cmd, err := commands.NewVerifyDeliveryCodeCommand(
		orderID, req.Code, deliveryMethod,
		req.Recipient, req.PhotoRef, req.SignatureRef, location, req.Notes,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.verifyDeliveryCodeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
