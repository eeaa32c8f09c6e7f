package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/notification"
	"swiftparcel/internal/core/domain/model/order"
	"swiftparcel/internal/core/domain/model/payment"
	"swiftparcel/internal/core/domain/services"
	"swiftparcel/internal/core/ports"
)

// CourierAutoAssigner dispatches a courier to an order. Satisfied by
// AssignCourierCommandHandler; reconciliation uses it to put a paid order on
// the road without waiting for the sweep.
type CourierAutoAssigner interface {
	Handle(ctx context.Context, cmd AssignCourierCommand) (AssignmentResult, error)
}

// ReconcileResult reports what the reconciliation did. AlreadyProcessed is
// set when the payment was terminal before this result arrived, i.e. the
// provider replayed a callback.
type ReconcileResult struct {
	Status           payment.Status
	AlreadyProcessed bool
}

// ReconcilePaymentCommandHandler applies a provider result to a payment.
//
// Idempotency: the payment row is locked by the checkout-request-id lookup,
// so concurrent deliveries of the same result serialize. The first one moves
// the payment to its terminal status and records the confirmation side
// effects (customer notification, side-effects flag) in the same transaction;
// every later delivery observes the terminal status and changes nothing. The
// assignment trigger and the receipt email run after commit, at most once:
// the side-effects flag committed with the Paid status is what keeps replays
// away from them.
type ReconcilePaymentCommandHandler struct {
	uowFactory   PaymentUoWFactory
	assigner     CourierAutoAssigner
	emailSender  ports.EmailSender
	financeEmail string
	logger       *slog.Logger
}

// NewReconcilePaymentCommandHandler creates a handler for payment reconciliation.
// financeEmail receives receipt copies and review alerts.
func NewReconcilePaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	assigner CourierAutoAssigner,
	emailSender ports.EmailSender,
	financeEmail string,
	logger *slog.Logger,
) ReconcilePaymentCommandHandler {
	return ReconcilePaymentCommandHandler{
		uowFactory:   uowFactory,
		assigner:     assigner,
		emailSender:  emailSender,
		financeEmail: financeEmail,
		logger:       logger,
	}
}

// Handle processes the provider result.
func (h ReconcilePaymentCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcilePaymentCommand,
) (ReconcileResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReconcileResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReconcileResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()

	aggregate, err := paymentRepo.GetByCheckoutRequestID(ctx, cmd.CheckoutRequestID())
	if err != nil {
		return ReconcileResult{}, err
	}

	if aggregate.Status().IsTerminal() {
		return ReconcileResult{Status: aggregate.Status(), AlreadyProcessed: true}, nil
	}

	outcome := payment.ClassifyResultCode(cmd.ResultCode())

	if err = aggregate.ApplyOutcome(outcome, cmd.ReceiptNumber(), cmd.PaidAt()); err != nil {
		if errors.Is(err, payment.ErrAlreadyProcessed) {
			return ReconcileResult{Status: aggregate.Status(), AlreadyProcessed: true}, nil
		}
		return ReconcileResult{}, err
	}

	paidOrder, err := uow.OrderRepository().Get(ctx, aggregate.OrderID())
	if err != nil {
		return ReconcileResult{}, err
	}

	if aggregate.Status() == payment.Paid {
		if err = aggregate.MarkSideEffectsDone(); err != nil {
			return ReconcileResult{}, err
		}
	}

	if err = paymentRepo.Update(ctx, aggregate); err != nil {
		return ReconcileResult{}, err
	}

	note, err := h.buildNotification(aggregate, paidOrder)
	if err != nil {
		return ReconcileResult{}, err
	}

	if err = uow.NotificationRepository().Add(ctx, note); err != nil {
		return ReconcileResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ReconcileResult{}, err
	}

	if aggregate.Status() == payment.Paid {
		h.triggerAssignment(ctx, paidOrder)
	}

	h.sendEmails(ctx, aggregate, paidOrder)

	return ReconcileResult{Status: aggregate.Status()}, nil
}

// triggerAssignment dispatches a courier to the freshly paid order. It runs
// once per payment: replayed callbacks return before reaching it because the
// side-effects flag commits together with the Paid status. A fleet with
// nobody free is not a reconciliation failure; the sweep job retries until a
// courier frees up.
func (h ReconcilePaymentCommandHandler) triggerAssignment(ctx context.Context, paidOrder *order.Order) {
	cmd, err := NewAssignCourierCommand(paidOrder.ID())
	if err != nil {
		h.logger.Error("assignment after payment could not be requested",
			slog.String("order_id", paidOrder.ID().String()), slog.Any("error", err))
		return
	}

	result, err := h.assigner.Handle(ctx, cmd)
	switch {
	case err == nil:
		h.logger.Info("courier dispatched after payment",
			slog.String("order_id", paidOrder.ID().String()),
			slog.String("courier_id", result.CourierID.String()))
	case errors.Is(err, services.ErrNoCourierAvailable):
		h.logger.Info("no courier available after payment, sweep will retry",
			slog.String("order_id", paidOrder.ID().String()))
	case errors.Is(err, order.ErrCourierAlreadyAssigned):
		// manual dispatch won the race
	default:
		h.logger.Error("assignment after payment failed",
			slog.String("order_id", paidOrder.ID().String()), slog.Any("error", err))
	}
}

func (h ReconcilePaymentCommandHandler) buildNotification(
	aggregate *payment.Payment,
	paidOrder *order.Order,
) (*notification.Notification, error) {
	orderID := paidOrder.ID()

	if aggregate.Status() == payment.Paid {
		return notification.NewNotification(
			kernel.NewUUID(),
			paidOrder.CustomerID(),
			&orderID,
			notification.KindPaymentConfirmed,
			fmt.Sprintf("Payment of %s for order %s confirmed. Receipt %s.",
				aggregate.Amount(), paidOrder.TrackingNumber(), aggregate.ReceiptNumber()),
		)
	}

	return notification.NewNotification(
		kernel.NewUUID(),
		paidOrder.CustomerID(),
		&orderID,
		notification.KindPaymentFailed,
		fmt.Sprintf("Payment for order %s was not completed: %s.",
			paidOrder.TrackingNumber(), aggregate.FailureReason()),
	)
}

// sendEmails runs after commit. Failures are logged, never retried here; the
// committed state is the source of truth and the finance mailbox is advisory.
func (h ReconcilePaymentCommandHandler) sendEmails(
	ctx context.Context,
	aggregate *payment.Payment,
	paidOrder *order.Order,
) {
	if h.financeEmail == "" {
		return
	}

	switch {
	case aggregate.ReviewRequired():
		subject := fmt.Sprintf("Payment needs review: %s", paidOrder.TrackingNumber())
		body := fmt.Sprintf("Payment %s for order %s ended in %s and needs manual review.",
			aggregate.ID(), paidOrder.TrackingNumber(), aggregate.Status())
		if reason := aggregate.FailureReason(); reason != "" {
			body = fmt.Sprintf("%s Reason: %s.", body, reason)
		}
		if err := h.emailSender.Send(ctx, h.financeEmail, subject, body); err != nil {
			h.logger.Error("review alert email failed", slog.Any("error", err))
		}
	case aggregate.Status() == payment.Paid:
		subject := fmt.Sprintf("Payment received for %s", paidOrder.TrackingNumber())
		body := fmt.Sprintf("Order %s settled with %s, receipt %s, payer %s.",
			paidOrder.TrackingNumber(), aggregate.Amount(), aggregate.ReceiptNumber(), aggregate.Phone())
		if err := h.emailSender.Send(ctx, h.financeEmail, subject, body); err != nil {
			h.logger.Error("receipt email failed", slog.Any("error", err))
		}
	}
}
