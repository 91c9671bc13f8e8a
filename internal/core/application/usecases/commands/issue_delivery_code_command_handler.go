package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// IssueDeliveryCodeCommandHandler issues one-time customer delivery codes.
// Same commit-then-publish ordering as the merchant handover flow; see
// IssueHandoverCodeCommandHandler.
type IssueDeliveryCodeCommandHandler struct {
	uowFactory OrderUoWFactory
	ttlStore   ports.TTLStore
	codeTTL    time.Duration
	codeLength int
}

// NewIssueDeliveryCodeCommandHandler creates a handler issuing customer
// delivery codes with the given lifetime and length. Lengths outside 4..8
// fall back to 6.
func NewIssueDeliveryCodeCommandHandler(
	uowFactory OrderUoWFactory,
	ttlStore ports.TTLStore,
	codeTTL time.Duration,
	codeLength int,
) IssueDeliveryCodeCommandHandler {
	return IssueDeliveryCodeCommandHandler{
		uowFactory: uowFactory,
		ttlStore:   ttlStore,
		codeTTL:    codeTTL,
		codeLength: normalizeCodeLength(codeLength),
	}
}

// Handle issues the code and returns it for out-of-band dispatch to the
// customer. Fails with ErrOrderNotOutForDelivery unless the order is out
// for delivery.
func (h IssueDeliveryCodeCommandHandler) Handle(
	ctx context.Context,
	command IssueDeliveryCodeCommand,
) (string, error) {
	if err := command.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return "", err
	}

	if ord.Status() != order.OutForDelivery {
		return "", fmt.Errorf("%w: order is %s", ErrOrderNotOutForDelivery, ord.Status())
	}

	code := generateCode(h.codeLength)

	if err = ord.RecordDeliveryCode(code); err != nil {
		return "", err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	if err = h.ttlStore.Set(ctx, customerDeliveryKey(ord.ID()), code, h.codeTTL); err != nil {
		return "", err
	}

	return code, nil
}
