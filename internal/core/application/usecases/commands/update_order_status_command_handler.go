package commands

import (
	"context"
	"fmt"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/notification"
	"swiftparcel/internal/core/domain/model/order"
)

// UpdateOrderStatusCommandHandler moves an order through its lifecycle and
// keeps the assigned courier's availability consistent with it: delivery
// completion and cancellation both release the courier.
type UpdateOrderStatusCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for lifecycle updates.
func NewUpdateOrderStatusCommandHandler(uowFactory AssignmentUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status update. The order row is locked for the
// duration of the transaction, so concurrent lifecycle updates serialize and
// the transition table decides who wins.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// capture before Cancel clears it
	courierID := aggregate.Courier()

	if err = aggregate.ApplyStatus(cmd.Target()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if courierID != nil && (cmd.Target() == order.Delivered || cmd.Target() == order.Cancelled) {
		if err = h.releaseCourier(ctx, uow, *courierID, cmd.Target()); err != nil {
			return err
		}
	}

	orderID := aggregate.ID()
	note, err := notification.NewNotification(
		kernel.NewUUID(),
		aggregate.CustomerID(),
		&orderID,
		notification.KindStatusUpdated,
		fmt.Sprintf("Order %s is now %s.", aggregate.TrackingNumber(), aggregate.Status()),
	)
	if err != nil {
		return err
	}

	if err = uow.NotificationRepository().Add(ctx, note); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h UpdateOrderStatusCommandHandler) releaseCourier(
	ctx context.Context,
	uow AssignmentUoW,
	courierID kernel.UUID,
	target order.Status,
) error {
	courierRepo := uow.CourierRepository()

	assignee, err := courierRepo.GetForUpdate(ctx, courierID)
	if err != nil {
		return err
	}

	if target == order.Delivered {
		assignee.CompleteDelivery()
	} else {
		assignee.MarkAvailable()
	}

	return courierRepo.Update(ctx, assignee)
}
