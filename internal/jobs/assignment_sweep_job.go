package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"swiftparcel/internal/core/application/usecases/commands"
	"swiftparcel/internal/core/domain/model/order"
	"swiftparcel/internal/core/domain/services"
)

// AssignmentSweepJob periodically retries automatic dispatch for paid orders
// still waiting for a courier. It picks up orders whose assignment after
// payment failed because the fleet was busy or out of range; unpaid orders
// are not candidates.
type AssignmentSweepJob struct {
	uowFactory commands.OrderUoWFactory
	handler    commands.AssignCourierCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewAssignmentSweepJob creates a job retrying courier assignment every 30
// seconds.
func NewAssignmentSweepJob(
	uowFactory commands.OrderUoWFactory,
	handler commands.AssignCourierCommandHandler,
	logger *slog.Logger,
) *AssignmentSweepJob {
	return &AssignmentSweepJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "assignment_sweep_job"),
	}
}

// Start begins the sweep.
func (j *AssignmentSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment sweep job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep.
func (j *AssignmentSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment sweep job stopped")
}

func (j *AssignmentSweepJob) sweep(ctx context.Context) {
	// Listing runs on the pool; each assignment opens its own transaction.
	pending, err := j.uowFactory.Create().OrderRepository().GetAllAwaitingAssignment(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Assignment sweep failed to list paid pending orders", "error", err)
		return
	}

	for _, aggregate := range pending {
		cmd, err := commands.NewAssignCourierCommand(aggregate.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Assignment sweep built an invalid command",
				"order_id", aggregate.ID().String(), "error", err)
			continue
		}

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			// An empty fleet will not change for the remaining orders
			// in this pass.
			if errors.Is(err, services.ErrNoCourierAvailable) {
				return
			}
			// Lost the race against a concurrent manual assignment.
			if errors.Is(err, order.ErrCourierAlreadyAssigned) {
				continue
			}
			j.logger.ErrorContext(ctx, "Assignment sweep failed for order",
				"order_id", aggregate.ID().String(), "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Assignment sweep dispatched courier",
			"order_id", aggregate.ID().String(),
			"courier_id", result.CourierID.String())
	}
}
