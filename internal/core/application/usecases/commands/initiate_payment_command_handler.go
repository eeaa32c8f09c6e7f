package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"swiftparcel/internal/core/domain/model/order"
	"swiftparcel/internal/core/domain/model/payment"
	"swiftparcel/internal/core/ports"
)

// ErrOrderNotPayable is returned when initiating payment for an order that is
// cancelled or already delivered and settled.
var ErrOrderNotPayable = errors.New("order is not in a payable state")

// InitiatePaymentResult reports the provider handshake back to the caller.
type InitiatePaymentResult struct {
	CheckoutRequestID string
	Status            payment.Status
}

// InitiatePaymentCommandHandler starts an STK push payment for an order.
//
// The provider round-trip can take tens of seconds, so it deliberately
// happens between two short transactions rather than inside one: the first
// persists the Pending payment, the push runs with no locks held, and the
// second records the provider's answer. A crash between the two leaves a
// Pending payment that the watch job expires.
type InitiatePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	gateway    ports.PaymentGateway
	logger     *slog.Logger
}

// NewInitiatePaymentCommandHandler creates a handler for payment initiation.
func NewInitiatePaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.PaymentGateway,
	logger *slog.Logger,
) InitiatePaymentCommandHandler {
	return InitiatePaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		logger:     logger,
	}
}

// Handle processes the payment initiation command.
func (h InitiatePaymentCommandHandler) Handle(
	ctx context.Context,
	cmd InitiatePaymentCommand,
) (InitiatePaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return InitiatePaymentResult{}, err
	}

	newPayment, reference, err := h.createPendingPayment(ctx, cmd)
	if err != nil {
		return InitiatePaymentResult{}, err
	}

	pushResult, pushErr := h.gateway.StartPushPayment(ctx, cmd.Phone(), newPayment.Amount(), reference)

	return h.recordProviderAnswer(ctx, cmd, pushResult, pushErr)
}

// createPendingPayment persists the Pending payment in its own transaction
// and returns it with the provider reference (the order's tracking number).
func (h InitiatePaymentCommandHandler) createPendingPayment(
	ctx context.Context,
	cmd InitiatePaymentCommand,
) (*payment.Payment, string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, "", err
	}

	if aggregate.Status() == order.Cancelled || aggregate.Status() == order.Delivered {
		return nil, "", ErrOrderNotPayable
	}

	newPayment, err := payment.NewPayment(
		cmd.PaymentID(),
		cmd.OrderID(),
		aggregate.TotalPrice(),
		cmd.Phone(),
		payment.MethodMpesa,
	)
	if err != nil {
		return nil, "", err
	}

	if err = uow.PaymentRepository().Add(ctx, newPayment); err != nil {
		return nil, "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, "", err
	}

	return newPayment, aggregate.TrackingNumber(), nil
}

// recordProviderAnswer persists the outcome of the push attempt in a second
// transaction: Processing with the provider identifiers on success, Failed on
// rejection.
func (h InitiatePaymentCommandHandler) recordProviderAnswer(
	ctx context.Context,
	cmd InitiatePaymentCommand,
	pushResult ports.PushPaymentResult,
	pushErr error,
) (InitiatePaymentResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return InitiatePaymentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()

	aggregate, err := paymentRepo.Get(ctx, cmd.PaymentID())
	if err != nil {
		return InitiatePaymentResult{}, err
	}

	if pushErr != nil {
		h.logger.Error("payment push rejected by provider",
			slog.String("payment_id", cmd.PaymentID().String()),
			slog.Any("error", pushErr))

		if err = aggregate.MarkFailed(fmt.Sprintf("push request failed: %v", pushErr)); err != nil {
			return InitiatePaymentResult{}, err
		}
	} else {
		if err = aggregate.MarkProcessing(pushResult.CheckoutRequestID, pushResult.MerchantRequestID); err != nil {
			return InitiatePaymentResult{}, err
		}
	}

	if err = paymentRepo.Update(ctx, aggregate); err != nil {
		return InitiatePaymentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return InitiatePaymentResult{}, err
	}

	if pushErr != nil {
		return InitiatePaymentResult{}, pushErr
	}

	return InitiatePaymentResult{
		CheckoutRequestID: pushResult.CheckoutRequestID,
		Status:            aggregate.Status(),
	}, nil
}
