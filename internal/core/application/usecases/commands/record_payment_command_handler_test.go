package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordPaymentCommandHandler_Handle_MarksPaidAndAutoConfirms(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ord := buildOrderAt(t, order.Placed, order.UPI, order.PaymentUnpaid)

	cmd, err := commands.NewRecordPaymentCommand(ord.ID(), true)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockNotifier)

	uow.On("OrderRepository").Return(repo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("GetForUpdate", ctx, ord.ID()).Return(ord, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		repo.On("AddStatusEvent", ctx, mock.AnythingOfType("*order.StatusEvent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	notifier.On("Publish", ctx, ports.EventStatusChanged, mock.Anything).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecordPaymentCommandHandler(factory, notifier, fixedClock{now: now})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, ord.PaymentStatus())
	assert.Equal(t, order.Confirmed, ord.Status())

	eventCall := repo.Calls[2]
	recorded := eventCall.Arguments[1].(*order.StatusEvent)
	assert.Equal(t, order.Placed, recorded.FromStatus())
	assert.Equal(t, order.Confirmed, recorded.Status())
	assert.Equal(t, "auto-confirmed after payment completion", recorded.Note())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRecordPaymentCommandHandler_Handle_PaidAfterConfirmationKeepsStatus(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ord := buildOrderAt(t, order.Confirmed, order.UPI, order.PaymentUnpaid)

	cmd, err := commands.NewRecordPaymentCommand(ord.ID(), true)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockNotifier)

	uow.On("OrderRepository").Return(repo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("GetForUpdate", ctx, ord.ID()).Return(ord, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecordPaymentCommandHandler(factory, notifier, fixedClock{now: now})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, ord.PaymentStatus())
	assert.Equal(t, order.Confirmed, ord.Status())
	repo.AssertNotCalled(t, "AddStatusEvent", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordPaymentCommandHandler_Handle_MarksFailed(t *testing.T) {
	ctx := t.Context()
	ord := buildOrderAt(t, order.Placed, order.Card, order.PaymentUnpaid)

	cmd, err := commands.NewRecordPaymentCommand(ord.ID(), false)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockNotifier)

	uow.On("OrderRepository").Return(repo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("GetForUpdate", ctx, ord.ID()).Return(ord, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecordPaymentCommandHandler(factory, notifier, fixedClock{now: time.Now()})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PaymentFailed, ord.PaymentStatus())
	assert.Equal(t, order.Placed, ord.Status())
	repo.AssertNotCalled(t, "AddStatusEvent", mock.Anything, mock.Anything)
}
