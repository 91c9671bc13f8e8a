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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sweepWindow = 10 * time.Minute

func newSweepHandler(
	factory *MockUoWFactory,
	ttlStore *MockTTLStore,
	notifier *MockNotifier,
	now time.Time,
) commands.SweepAcceptanceTimeoutsCommandHandler {
	return commands.NewSweepAcceptanceTimeoutsCommandHandler(
		factory,
		services.NewAgentSelector(),
		newStubRouteEstimator(),
		ttlStore,
		notifier,
		fixedClock{now: now},
		sweepWindow,
		5*time.Minute,
	)
}

func TestSweepAcceptanceTimeoutsCommandHandler_Handle_ReassignsStaleAssignment(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-sweepWindow)

	ord := buildOrderAt(t, order.ReadyForPickup, order.UPI, order.PaymentPaid)
	oldAgent := buildEligibleAgent(t, ord.StoreID(), 1)
	newAgent := buildEligibleAgent(t, ord.StoreID(), 0)
	stale := buildAssignmentAt(t, ord.ID(), oldAgent.ID(), assignment.Assigned, now.Add(-11*time.Minute))

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	assignmentRepo := new(MockAssignmentRepository)
	listUow := new(MockUoW)
	sweepUow := new(MockUoW)
	ttlStore := new(MockTTLStore)
	notifier := new(MockNotifier)

	listUow.On("AssignmentRepository").Return(assignmentRepo)
	sweepUow.On("OrderRepository").Return(orderRepo)
	sweepUow.On("AgentRepository").Return(agentRepo)
	sweepUow.On("AssignmentRepository").Return(assignmentRepo)

	mock.InOrder(
		listUow.On("Begin", ctx).Return(nil).Once(),
		assignmentRepo.On("GetExpiredUnaccepted", ctx, cutoff).
			Return([]*assignment.Assignment{stale}, nil).Once(),
		listUow.On("Rollback", ctx).Return(nil).Once(),
		sweepUow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("GetForUpdate", ctx, ord.ID()).Return(ord, nil).Once(),
		assignmentRepo.On("GetActiveByOrderForUpdate", ctx, ord.ID()).Return(stale, nil).Once(),
		agentRepo.On("GetForUpdate", ctx, oldAgent.ID()).Return(oldAgent, nil).Once(),
		assignmentRepo.On("Update", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.DeliveryAgent")).Return(nil).Once(),
		agentRepo.On("GetEligibleByStore", ctx, ord.StoreID()).
			Return([]*agent.DeliveryAgent{newAgent}, nil).Once(),
		agentRepo.On("GetForUpdate", ctx, newAgent.ID()).Return(newAgent, nil).Once(),
		assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.DeliveryAgent")).Return(nil).Once(),
		sweepUow.On("Commit", ctx).Return(nil).Once(),
		sweepUow.On("Rollback", ctx).Return(nil).Once(),
	)

	notifier.On("Publish", ctx, ports.EventAssignmentChanged, mock.Anything).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(listUow).Once()
	factory.On("Create").Return(sweepUow).Once()

	handler := newSweepHandler(factory, ttlStore, notifier, now)
	count, err := handler.Handle(ctx, commands.NewSweepAcceptanceTimeoutsCommand())

	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, assignment.Cancelled, stale.Status())
	require.NotNil(t, stale.CancellationReason())
	assert.Equal(t, "acceptance timeout", *stale.CancellationReason())
	assert.Equal(t, 0, oldAgent.CurrentAssignments())
	assert.Equal(t, 1, newAgent.CurrentAssignments())

	assignmentRepo.AssertExpectations(t)
	agentRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestSweepAcceptanceTimeoutsCommandHandler_Handle_NoReplacementAgentRaisesAlert(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-sweepWindow)

	ord := buildOrderAt(t, order.ReadyForPickup, order.UPI, order.PaymentPaid)
	oldAgent := buildEligibleAgent(t, ord.StoreID(), 1)
	stale := buildAssignmentAt(t, ord.ID(), oldAgent.ID(), assignment.Assigned, now.Add(-15*time.Minute))
	alertKey := "assign:alert:" + ord.ID().String()

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	assignmentRepo := new(MockAssignmentRepository)
	listUow := new(MockUoW)
	sweepUow := new(MockUoW)
	ttlStore := new(MockTTLStore)
	notifier := new(MockNotifier)

	listUow.On("AssignmentRepository").Return(assignmentRepo)
	sweepUow.On("OrderRepository").Return(orderRepo)
	sweepUow.On("AgentRepository").Return(agentRepo)
	sweepUow.On("AssignmentRepository").Return(assignmentRepo)

	mock.InOrder(
		listUow.On("Begin", ctx).Return(nil).Once(),
		assignmentRepo.On("GetExpiredUnaccepted", ctx, cutoff).
			Return([]*assignment.Assignment{stale}, nil).Once(),
		listUow.On("Rollback", ctx).Return(nil).Once(),
		sweepUow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("GetForUpdate", ctx, ord.ID()).Return(ord, nil).Once(),
		assignmentRepo.On("GetActiveByOrderForUpdate", ctx, ord.ID()).Return(stale, nil).Once(),
		agentRepo.On("GetForUpdate", ctx, oldAgent.ID()).Return(oldAgent, nil).Once(),
		assignmentRepo.On("Update", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.DeliveryAgent")).Return(nil).Once(),
		agentRepo.On("GetEligibleByStore", ctx, ord.StoreID()).
			Return([]*agent.DeliveryAgent{}, nil).Once(),
		sweepUow.On("Commit", ctx).Return(nil).Once(),
		sweepUow.On("Rollback", ctx).Return(nil).Once(),
		ttlStore.On("Get", ctx, alertKey).Return("", false, nil).Once(),
		ttlStore.On("Set", ctx, alertKey, "1", 5*time.Minute).Return(nil).Once(),
	)

	notifier.On("Publish", ctx, ports.EventAssignmentChanged, mock.Anything).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(listUow).Once()
	factory.On("Create").Return(sweepUow).Once()

	handler := newSweepHandler(factory, ttlStore, notifier, now)
	count, err := handler.Handle(ctx, commands.NewSweepAcceptanceTimeoutsCommand())

	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// The stale assignment is still cancelled; the order falls back to the
	// auto-assignment pool.
	assert.Equal(t, assignment.Cancelled, stale.Status())
	assert.Equal(t, 0, oldAgent.CurrentAssignments())

	ttlStore.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSweepAcceptanceTimeoutsCommandHandler_Handle_SkipsAssignmentAcceptedMeanwhile(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-sweepWindow)

	ord := buildOrderAt(t, order.ReadyForPickup, order.UPI, order.PaymentPaid)
	oldAgent := buildEligibleAgent(t, ord.StoreID(), 1)
	listed := buildAssignmentAt(t, ord.ID(), oldAgent.ID(), assignment.Assigned, now.Add(-11*time.Minute))
	accepted := buildAssignmentAt(t, ord.ID(), oldAgent.ID(), assignment.Accepted, now.Add(-11*time.Minute))

	orderRepo := new(MockOrderRepository)
	assignmentRepo := new(MockAssignmentRepository)
	listUow := new(MockUoW)
	sweepUow := new(MockUoW)
	notifier := new(MockNotifier)

	listUow.On("AssignmentRepository").Return(assignmentRepo)
	sweepUow.On("OrderRepository").Return(orderRepo)
	sweepUow.On("AssignmentRepository").Return(assignmentRepo)

	mock.InOrder(
		listUow.On("Begin", ctx).Return(nil).Once(),
		assignmentRepo.On("GetExpiredUnaccepted", ctx, cutoff).
			Return([]*assignment.Assignment{listed}, nil).Once(),
		listUow.On("Rollback", ctx).Return(nil).Once(),
		sweepUow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("GetForUpdate", ctx, ord.ID()).Return(ord, nil).Once(),
		assignmentRepo.On("GetActiveByOrderForUpdate", ctx, ord.ID()).Return(accepted, nil).Once(),
		sweepUow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(listUow).Once()
	factory.On("Create").Return(sweepUow).Once()

	handler := newSweepHandler(factory, new(MockTTLStore), notifier, now)
	count, err := handler.Handle(ctx, commands.NewSweepAcceptanceTimeoutsCommand())

	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, assignment.Accepted, accepted.Status())
	sweepUow.AssertNotCalled(t, "Commit", ctx)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestSweepAcceptanceTimeoutsCommandHandler_Handle_NoCandidates(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-sweepWindow)

	assignmentRepo := new(MockAssignmentRepository)
	listUow := new(MockUoW)

	listUow.On("AssignmentRepository").Return(assignmentRepo)

	mock.InOrder(
		listUow.On("Begin", ctx).Return(nil).Once(),
		assignmentRepo.On("GetExpiredUnaccepted", ctx, cutoff).
			Return([]*assignment.Assignment{}, nil).Once(),
		listUow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(listUow).Once()

	handler := newSweepHandler(factory, new(MockTTLStore), new(MockNotifier), now)
	count, err := handler.Handle(ctx, commands.NewSweepAcceptanceTimeoutsCommand())

	require.NoError(t, err)
	assert.Equal(t, 0, count)
	factory.AssertExpectations(t)
}
