package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordLocationPingCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	orderID := kernel.NewUUID()
	ag := buildEligibleAgent(t, kernel.NewUUID(), 1)
	current := buildAssignmentAt(t, orderID, ag.ID(), assignment.InTransit, now.Add(-20*time.Minute))

	point, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)
	speed := decimal.NewFromFloat(23.5)
	battery := 68

	cmd, err := commands.NewRecordLocationPingCommand(orderID, ag.ID(), point, &speed, &battery)
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	uow.On("AgentRepository").Return(agentRepo)
	uow.On("AssignmentRepository").Return(assignmentRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		assignmentRepo.On("GetActiveByOrder", ctx, orderID).Return(current, nil).Once(),
		agentRepo.On("GetForUpdate", ctx, ag.ID()).Return(ag, nil).Once(),
		assignmentRepo.On("AddTrackingPoint", ctx, mock.AnythingOfType("*assignment.TrackingPoint")).
			Return(nil).Once(),
		agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.DeliveryAgent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	notifier.On("Publish", ctx, ports.EventLocationPinged, mock.Anything).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecordLocationPingCommandHandler(factory, notifier, fixedClock{now: now})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	require.NotNil(t, ag.LastKnownLocation())
	assert.Equal(t, point, *ag.LastKnownLocation())
	require.NotNil(t, ag.LastLocationAt())
	assert.Equal(t, now, *ag.LastLocationAt())

	addCall := assignmentRepo.Calls[1]
	recorded := addCall.Arguments[1].(*assignment.TrackingPoint)
	assert.Equal(t, current.ID(), recorded.AssignmentID())
	assert.Equal(t, point, recorded.Point())
	require.NotNil(t, recorded.SpeedKmh())
	assert.True(t, speed.Equal(*recorded.SpeedKmh()))
	require.NotNil(t, recorded.BatteryLevel())
	assert.Equal(t, 68, *recorded.BatteryLevel())

	assignmentRepo.AssertExpectations(t)
	agentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRecordLocationPingCommandHandler_Handle_AgentMismatch(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	orderID := kernel.NewUUID()
	current := buildAssignmentAt(t, orderID, kernel.NewUUID(), assignment.InTransit, now.Add(-20*time.Minute))

	point, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)

	cmd, err := commands.NewRecordLocationPingCommand(orderID, kernel.NewUUID(), point, nil, nil)
	require.NoError(t, err)

	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)

	uow.On("AssignmentRepository").Return(assignmentRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		assignmentRepo.On("GetActiveByOrder", ctx, orderID).Return(current, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecordLocationPingCommandHandler(factory, new(MockNotifier), fixedClock{now: now})
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrPingAgentMismatch)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestRecordLocationPingCommand_RejectsBadBatteryLevel(t *testing.T) {
	point, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)

	battery := 140
	_, err = commands.NewRecordLocationPingCommand(kernel.NewUUID(), kernel.NewUUID(), point, nil, &battery)

	require.Error(t, err)
}

func TestRecordLocationPingCommandHandler_Handle_RejectsUnacceptedAssignment(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	orderID := kernel.NewUUID()
	agentID := kernel.NewUUID()
	current := buildAssignmentAt(t, orderID, agentID, assignment.Assigned, now.Add(-time.Minute))

	point, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)

	cmd, err := commands.NewRecordLocationPingCommand(orderID, agentID, point, nil, nil)
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)

	uow.On("AssignmentRepository").Return(assignmentRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		assignmentRepo.On("GetActiveByOrder", ctx, orderID).Return(current, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecordLocationPingCommandHandler(factory, new(MockNotifier), fixedClock{now: now})
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrPingBeforeAcceptance)
	agentRepo.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	assignmentRepo.AssertNotCalled(t, "AddTrackingPoint", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}
