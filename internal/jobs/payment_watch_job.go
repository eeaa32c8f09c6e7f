package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"swiftparcel/internal/core/application/usecases/commands"
	"swiftparcel/internal/core/ports"
)

// stuckThreshold is how long a payment may sit in Processing before the job
// asks the provider what happened. STK prompts expire after about a minute,
// so anything older has an answer waiting.
const stuckThreshold = 2 * time.Minute

// PaymentWatchJob resolves payments whose callback never arrived. It polls
// the provider for each stuck payment and feeds the answer through the same
// reconciliation path a callback would take, so replays stay harmless.
type PaymentWatchJob struct {
	uowFactory commands.PaymentUoWFactory
	gateway    ports.PaymentGateway
	handler    commands.ReconcilePaymentCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewPaymentWatchJob creates a job querying stuck payments every minute.
func NewPaymentWatchJob(
	uowFactory commands.PaymentUoWFactory,
	gateway ports.PaymentGateway,
	handler commands.ReconcilePaymentCommandHandler,
	logger *slog.Logger,
) *PaymentWatchJob {
	return &PaymentWatchJob{
		uowFactory: uowFactory,
		gateway:    gateway,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "payment_watch_job"),
	}
}

// Start begins the watch.
func (j *PaymentWatchJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.watch(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment watch job started (running every minute)")
	return nil
}

// Stop stops the watch.
func (j *PaymentWatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment watch job stopped")
}

func (j *PaymentWatchJob) watch(ctx context.Context) {
	cutoff := time.Now().Add(-stuckThreshold)

	stuck, err := j.uowFactory.Create().PaymentRepository().GetAllProcessingOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment watch failed to list stuck payments", "error", err)
		return
	}

	for _, aggregate := range stuck {
		checkoutRequestID := aggregate.CheckoutRequestID()

		status, err := j.gateway.QueryStatus(ctx, checkoutRequestID)
		if err != nil {
			// The provider may still be settling; the next pass retries.
			j.logger.WarnContext(ctx, "Payment watch status query failed",
				"payment_id", aggregate.ID().String(), "error", err)
			continue
		}

		cmd, err := commands.NewReconcilePaymentCommand(
			checkoutRequestID, status.ResultCode, "", time.Now().UTC(),
		)
		if err != nil {
			j.logger.ErrorContext(ctx, "Payment watch built an invalid command",
				"payment_id", aggregate.ID().String(), "error", err)
			continue
		}

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Payment watch reconciliation failed",
				"payment_id", aggregate.ID().String(), "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Payment watch resolved stuck payment",
			"payment_id", aggregate.ID().String(),
			"status", result.Status.String())
	}
}
