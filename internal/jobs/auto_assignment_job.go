package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// AutoAssignmentJob periodically matches orders that are ready for pickup
// with available delivery agents. Orders that already carry an active
// assignment are left alone; the assignment handler is idempotent.
type AutoAssignmentJob struct {
	handler    commands.AssignOrderCommandHandler
	uowFactory commands.OrderUoWFactory
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewAutoAssignmentJob creates a job that assigns agents to ready orders
// every second.
func NewAutoAssignmentJob(
	handler commands.AssignOrderCommandHandler,
	uowFactory commands.OrderUoWFactory,
	logger *slog.Logger,
) *AutoAssignmentJob {
	return &AutoAssignmentJob{
		handler:    handler,
		uowFactory: uowFactory,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "auto_assignment_job"),
	}
}

// Start begins the auto-assignment job to run every second.
func (j *AutoAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		j.run(ctx)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-assignment job started (running every second)")
	return nil
}

// Stop stops the auto-assignment job.
func (j *AutoAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-assignment job stopped")
}

func (j *AutoAssignmentJob) run(ctx context.Context) {
	candidates, err := j.listReadyOrders(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-assignment job failed to list orders", "error", err)
		return
	}

	for _, ord := range candidates {
		cmd, err := commands.NewAssignOrderCommand(ord.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Auto-assignment job built invalid command", "error", err)
			continue
		}

		if _, err = j.handler.Handle(ctx, cmd); err != nil {
			// Only log errors that are not expected business scenarios
			if !errors.Is(err, commands.ErrNoAgentAvailable) {
				j.logger.ErrorContext(ctx, "Auto-assignment job failed",
					"order_id", ord.ID().String(), "error", err)
			}
		}
	}
}

// listReadyOrders reads the ready-for-pickup orders in a short read-only
// transaction.
func (j *AutoAssignmentJob) listReadyOrders(ctx context.Context) ([]*order.Order, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	uncompleted, err := uow.OrderRepository().GetAllUncompleted(ctx)
	if err != nil {
		return nil, err
	}

	ready := make([]*order.Order, 0, len(uncompleted))
	for _, ord := range uncompleted {
		if ord.Status() == order.ReadyForPickup {
			ready = append(ready, ord)
		}
	}
	return ready, nil
}
