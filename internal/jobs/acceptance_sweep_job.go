package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AcceptanceSweepJob runs the acceptance timeout sweep on a fixed schedule.
// Assignments that sat unaccepted past the acceptance window are cancelled
// and the orders handed to a different agent.
type AcceptanceSweepJob struct {
	handler  commands.SweepAcceptanceTimeoutsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAcceptanceSweepJob creates a job running the sweep on the given cron
// schedule (six-field, seconds included).
func NewAcceptanceSweepJob(
	handler commands.SweepAcceptanceTimeoutsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *AcceptanceSweepJob {
	return &AcceptanceSweepJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "acceptance_sweep_job"),
	}
}

// Start begins the acceptance sweep job on its configured schedule.
func (j *AcceptanceSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewSweepAcceptanceTimeoutsCommand()

		reassigned, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Acceptance sweep failed", "error", err)
		}
		if reassigned > 0 {
			j.logger.InfoContext(ctx, "Acceptance sweep reassigned stale orders", "count", reassigned)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Acceptance sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the acceptance sweep job.
func (j *AcceptanceSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Acceptance sweep job stopped")
}
