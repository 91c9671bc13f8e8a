package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUncompleted(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AddStatusEvent(ctx context.Context, event *order.StatusEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOrderRepository) GetStatusEvents(ctx context.Context, orderID kernel.UUID) ([]*order.StatusEvent, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.StatusEvent), args.Error(1)
}

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) Add(ctx context.Context, a *agent.DeliveryAgent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Update(ctx context.Context, a *agent.DeliveryAgent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.DeliveryAgent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.DeliveryAgent), args.Error(1)
}

func (m *MockAgentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*agent.DeliveryAgent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.DeliveryAgent), args.Error(1)
}

func (m *MockAgentRepository) GetAllByStore(ctx context.Context, storeID kernel.UUID) ([]*agent.DeliveryAgent, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agent.DeliveryAgent), args.Error(1)
}

func (m *MockAgentRepository) GetEligibleByStore(
	ctx context.Context,
	storeID kernel.UUID,
) ([]*agent.DeliveryAgent, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agent.DeliveryAgent), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetActiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetActiveByOrderForUpdate(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetExpiredUnaccepted(
	ctx context.Context,
	cutoff time.Time,
) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) AddTrackingPoint(ctx context.Context, point *assignment.TrackingPoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetTrackingPoints(
	ctx context.Context,
	assignmentID kernel.UUID,
) ([]*assignment.TrackingPoint, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.TrackingPoint), args.Error(1)
}

func (m *MockAssignmentRepository) AddProofOfDelivery(ctx context.Context, proof *assignment.ProofOfDelivery) error {
	args := m.Called(ctx, proof)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AgentRepository() ports.AgentRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockAgentUoW struct{ mock.Mock }

func (m *MockAgentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAgentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAgentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAgentUoW) AgentRepository() ports.AgentRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentRepository)
}

type MockAgentUoWFactory struct{ mock.Mock }

func (m *MockAgentUoWFactory) Create() commands.AgentUoW {
	args := m.Called()
	return args.Get(0).(commands.AgentUoW)
}

type MockTTLStore struct{ mock.Mock }

func (m *MockTTLStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockTTLStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockTTLStore) Delete(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Publish(ctx context.Context, kind ports.EventKind, payload map[string]any) {
	m.Called(ctx, kind, payload)
}

type MockPaymentProvider struct{ mock.Mock }

func (m *MockPaymentProvider) IsPaid(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

// stubRouteEstimator returns a fixed estimate; route planning is not under
// test in this package.
type stubRouteEstimator struct {
	distanceKm  decimal.Decimal
	timeMinutes int
}

func newStubRouteEstimator() stubRouteEstimator {
	return stubRouteEstimator{distanceKm: decimal.NewFromFloat(4.2), timeMinutes: 25}
}

func (s stubRouteEstimator) Estimate(_ context.Context, _ kernel.UUID) (decimal.Decimal, int, error) {
	return s.distanceKm, s.timeMinutes, nil
}

// fixedClock pins time so acceptance windows and timestamps are deterministic.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// Fixture builders. Amounts are arbitrary but consistent: 500 + 40 + 25 - 50 = 515.

func buildOrderAt(
	t *testing.T,
	status order.Status,
	method order.PaymentMethod,
	paymentStatus order.PaymentStatus,
) *order.Order {
	t.Helper()

	ord, err := order.RestoreOrder(
		kernel.NewUUID(),
		order.GenerateOrderNumber(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		status,
		paymentStatus,
		method,
		decimal.NewFromInt(500),
		decimal.NewFromInt(40),
		decimal.NewFromInt(25),
		decimal.NewFromInt(50),
		nil, nil, nil, nil,
	)
	require.NoError(t, err)
	return ord
}

func buildEligibleAgent(t *testing.T, storeID kernel.UUID, currentAssignments int) *agent.DeliveryAgent {
	t.Helper()

	ag, err := agent.RestoreDeliveryAgent(
		kernel.NewUUID(),
		storeID,
		"Ravi Kumar",
		"+911234567890",
		agent.Motorcycle,
		agent.Active,
		true,
		3,
		currentAssignments,
		10,
		9,
		nil, nil,
	)
	require.NoError(t, err)
	return ag
}

func buildAssignmentAt(
	t *testing.T,
	orderID kernel.UUID,
	agentID kernel.UUID,
	status assignment.Status,
	assignedAt time.Time,
) *assignment.Assignment {
	t.Helper()

	a, err := assignment.RestoreAssignment(
		kernel.NewUUID(),
		orderID,
		agentID,
		status,
		assignedAt,
		nil, nil, nil,
		decimal.NewFromFloat(4.2),
		25,
		nil, nil,
	)
	require.NoError(t, err)
	return a
}
