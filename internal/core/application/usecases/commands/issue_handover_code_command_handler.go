package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// IssueHandoverCodeCommandHandler issues one-time merchant handover codes.
//
// The code is recorded on the order (enforcing generated-at-most-once) in
// one transaction and only then written to the TTL store, so the order-row
// lock is never held across a TTL store call. A crash between commit and
// the TTL write leaves an order whose code is recorded but never live;
// verification then fails with ErrCodeExpiredOrMissing and the handover is
// resolved manually.
type IssueHandoverCodeCommandHandler struct {
	uowFactory UoWFactory
	ttlStore   ports.TTLStore
	codeTTL    time.Duration
	codeLength int
}

// NewIssueHandoverCodeCommandHandler creates a handler issuing merchant
// handover codes with the given lifetime and length. Lengths outside 4..8
// fall back to 6.
func NewIssueHandoverCodeCommandHandler(
	uowFactory UoWFactory,
	ttlStore ports.TTLStore,
	codeTTL time.Duration,
	codeLength int,
) IssueHandoverCodeCommandHandler {
	return IssueHandoverCodeCommandHandler{
		uowFactory: uowFactory,
		ttlStore:   ttlStore,
		codeTTL:    codeTTL,
		codeLength: normalizeCodeLength(codeLength),
	}
}

// Handle issues the code and returns it for display to store staff.
// Preconditions: the order is Packed or ReadyForPickup and has an active
// assignment; fails with ErrOrderNotReadyForHandover otherwise.
func (h IssueHandoverCodeCommandHandler) Handle(
	ctx context.Context,
	command IssueHandoverCodeCommand,
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

	if ord.Status() != order.Packed && ord.Status() != order.ReadyForPickup {
		return "", fmt.Errorf("%w: order is %s", ErrOrderNotReadyForHandover, ord.Status())
	}

	if _, err = uow.AssignmentRepository().GetActiveByOrder(ctx, ord.ID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return "", fmt.Errorf("%w: no active assignment", ErrOrderNotReadyForHandover)
		}
		return "", err
	}

	code := generateCode(h.codeLength)

	if err = ord.RecordHandoverCode(code); err != nil {
		return "", err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	if err = h.ttlStore.Set(ctx, merchantHandoverKey(ord.ID()), code, h.codeTTL); err != nil {
		return "", err
	}

	return code, nil
}
