package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		order.UPI,
		decimal.NewFromInt(500),
		decimal.NewFromInt(40),
		decimal.NewFromInt(25),
		decimal.NewFromInt(50),
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	uow.On("OrderRepository").Return(repo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)

	added := repo.Calls[0].Arguments[1].(*order.Order)
	assert.Equal(t, order.Placed, added.Status())
	assert.Equal(t, order.PaymentUnpaid, added.PaymentStatus())
	assert.Len(t, added.OrderNumber(), 11)
	assert.True(t, decimal.NewFromInt(515).Equal(added.TotalAmount()))

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	uow.On("OrderRepository").Return(repo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "add error")
	uow.AssertNotCalled(t, "Commit", ctx)
}
