package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReassignHandler(
	factory *MockUoWFactory,
	notifier *MockNotifier,
	now time.Time,
) commands.ReassignOrderCommandHandler {
	return commands.NewReassignOrderCommandHandler(
		factory,
		services.NewAgentSelector(),
		newStubRouteEstimator(),
		notifier,
		fixedClock{now: now},
	)
}

func TestReassignOrderCommandHandler_Handle_MovesOrderToDifferentAgent(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ord := buildOrderAt(t, order.ReadyForPickup, order.UPI, order.PaymentPaid)
	oldAgent := buildEligibleAgent(t, ord.StoreID(), 1)
	newAgent := buildEligibleAgent(t, ord.StoreID(), 0)
	current := buildAssignmentAt(t, ord.ID(), oldAgent.ID(), assignment.Assigned, now.Add(-3*time.Minute))

	cmd, err := commands.NewReassignOrderCommand(ord.ID(), "agent vehicle breakdown")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AgentRepository").Return(agentRepo)
	uow.On("AssignmentRepository").Return(assignmentRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("GetForUpdate", ctx, ord.ID()).Return(ord, nil).Once(),
		assignmentRepo.On("GetActiveByOrderForUpdate", ctx, ord.ID()).Return(current, nil).Once(),
		agentRepo.On("GetForUpdate", ctx, oldAgent.ID()).Return(oldAgent, nil).Once(),
		assignmentRepo.On("Update", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.DeliveryAgent")).Return(nil).Once(),
		agentRepo.On("GetEligibleByStore", ctx, ord.StoreID()).
			Return([]*agent.DeliveryAgent{oldAgent, newAgent}, nil).Once(),
		agentRepo.On("GetForUpdate", ctx, newAgent.ID()).Return(newAgent, nil).Once(),
		assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.DeliveryAgent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	notifier.On("Publish", ctx, ports.EventAssignmentChanged, mock.Anything).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newReassignHandler(factory, notifier, now)
	replacement, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, replacement)

	// The old agent stays in the candidate list but is excluded from selection.
	assert.Equal(t, newAgent.ID(), replacement.AgentID())
	assert.Equal(t, assignment.Cancelled, current.Status())
	require.NotNil(t, current.CancellationReason())
	assert.Equal(t, "agent vehicle breakdown", *current.CancellationReason())
	assert.Equal(t, 0, oldAgent.CurrentAssignments())
	assert.Equal(t, 1, newAgent.CurrentAssignments())

	orderRepo.AssertExpectations(t)
	agentRepo.AssertExpectations(t)
	assignmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestReassignOrderCommandHandler_Handle_RejectedAfterPickup(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ord := buildOrderAt(t, order.HandedToCourier, order.UPI, order.PaymentPaid)
	oldAgent := buildEligibleAgent(t, ord.StoreID(), 1)
	current := buildAssignmentAt(t, ord.ID(), oldAgent.ID(), assignment.PickedUp, now.Add(-20*time.Minute))

	cmd, err := commands.NewReassignOrderCommand(ord.ID(), "customer complaint")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AssignmentRepository").Return(assignmentRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("GetForUpdate", ctx, ord.ID()).Return(ord, nil).Once(),
		assignmentRepo.On("GetActiveByOrderForUpdate", ctx, ord.ID()).Return(current, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newReassignHandler(factory, notifier, now)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, assignment.ErrReassignmentNotAllowed)
	assert.Equal(t, assignment.PickedUp, current.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestReassignOrderCommandHandler_Handle_NoActiveAssignment(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ord := buildOrderAt(t, order.ReadyForPickup, order.UPI, order.PaymentPaid)

	cmd, err := commands.NewReassignOrderCommand(ord.ID(), "reshuffle")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)

	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AssignmentRepository").Return(assignmentRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("GetForUpdate", ctx, ord.ID()).Return(ord, nil).Once(),
		assignmentRepo.On("GetActiveByOrderForUpdate", ctx, ord.ID()).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newReassignHandler(factory, new(MockNotifier), now)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestReassignOrderCommand_RequiresReason(t *testing.T) {
	ord := buildOrderAt(t, order.ReadyForPickup, order.UPI, order.PaymentPaid)

	_, err := commands.NewReassignOrderCommand(ord.ID(), "")

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
