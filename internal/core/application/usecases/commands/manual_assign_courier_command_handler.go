package commands

import (
	"context"
	"errors"
	"log/slog"

	"swiftparcel/internal/core/ports"
)

// ErrCourierNotEligible is returned when a manually chosen courier cannot
// take the order (unverified, busy, or without a reported position).
var ErrCourierNotEligible = errors.New("courier is not eligible for assignment")

// ManualAssignCourierCommandHandler assigns a specific courier to an order.
// Used by dispatch operators; the same locking, eligibility and notification
// rules apply as in automatic assignment, only the selection step is skipped.
type ManualAssignCourierCommandHandler struct {
	uowFactory  AssignmentUoWFactory
	emailSender ports.EmailSender
	logger      *slog.Logger
}

// NewManualAssignCourierCommandHandler creates a handler for manual assignment.
func NewManualAssignCourierCommandHandler(
	uowFactory AssignmentUoWFactory,
	emailSender ports.EmailSender,
	logger *slog.Logger,
) ManualAssignCourierCommandHandler {
	return ManualAssignCourierCommandHandler{
		uowFactory:  uowFactory,
		emailSender: emailSender,
		logger:      logger,
	}
}

// Handle processes the manual assignment command.
func (h ManualAssignCourierCommandHandler) Handle(ctx context.Context, cmd ManualAssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	selected, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if !selected.IsEligible() {
		return ErrCourierNotEligible
	}

	if err = aggregate.Assign(selected.ID()); err != nil {
		return err
	}

	if err = selected.MarkBusy(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, selected); err != nil {
		return err
	}

	if err = addAssignmentNotifications(ctx, uow.NotificationRepository(), aggregate, selected); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sendAssignmentEmail(ctx, h.emailSender, h.logger, aggregate, selected)

	return nil
}
