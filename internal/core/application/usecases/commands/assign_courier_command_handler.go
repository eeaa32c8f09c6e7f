package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"swiftparcel/internal/core/domain/model/courier"
	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/notification"
	"swiftparcel/internal/core/domain/model/order"
	"swiftparcel/internal/core/domain/services"
	"swiftparcel/internal/core/ports"
)

// AssignmentResult reports which courier received the order and how far from
// the pickup they were when selected.
type AssignmentResult struct {
	CourierID   kernel.UUID
	CourierName string
	DistanceKm  float64
}

// AssignCourierCommandHandler orchestrates automatic courier assignment: it
// locks the order, selects the nearest eligible courier within range and
// commits the order and courier updates atomically. Both parties are notified
// in the same transaction; the assignment email goes out after commit and may
// fail without unwinding anything.
//
// The row lock is what resolves races: two concurrent assignments of the same
// order serialize on GetForUpdate, and the loser sees the courier already set
// and fails with order.ErrCourierAlreadyAssigned.
type AssignCourierCommandHandler struct {
	uowFactory  AssignmentUoWFactory
	dispatcher  services.CourierDispatcher
	emailSender ports.EmailSender
	logger      *slog.Logger
}

// NewAssignCourierCommandHandler creates a handler for automatic assignment.
func NewAssignCourierCommandHandler(
	uowFactory AssignmentUoWFactory,
	dispatcher services.CourierDispatcher,
	emailSender ports.EmailSender,
	logger *slog.Logger,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory:  uowFactory,
		dispatcher:  dispatcher,
		emailSender: emailSender,
		logger:      logger,
	}
}

// Handle processes the assignment command. Returns
// services.ErrNoCourierAvailable when nobody eligible is within range and
// order.ErrCourierAlreadyAssigned when the order already has a courier.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) (AssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return AssignmentResult{}, err
	}

	couriers, err := courierRepo.GetAllEligible(ctx)
	if err != nil {
		return AssignmentResult{}, err
	}

	selected, distanceKm, err := h.dispatcher.SelectNearest(aggregate.Route().Pickup(), couriers)
	if err != nil {
		return AssignmentResult{}, err
	}

	if err = aggregate.Assign(selected.ID()); err != nil {
		return AssignmentResult{}, err
	}

	if err = selected.MarkBusy(); err != nil {
		return AssignmentResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return AssignmentResult{}, err
	}

	if err = courierRepo.Update(ctx, selected); err != nil {
		return AssignmentResult{}, err
	}

	if err = addAssignmentNotifications(ctx, uow.NotificationRepository(), aggregate, selected); err != nil {
		return AssignmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignmentResult{}, err
	}

	sendAssignmentEmail(ctx, h.emailSender, h.logger, aggregate, selected)

	return AssignmentResult{
		CourierID:   selected.ID(),
		CourierName: selected.Name(),
		DistanceKm:  math.Round(distanceKm*100) / 100,
	}, nil
}

// addAssignmentNotifications records both sides of an assignment inside the
// surrounding transaction: the customer learns who delivers, the courier
// learns where to go.
func addAssignmentNotifications(
	ctx context.Context,
	notifications ports.NotificationRepository,
	aggregate *order.Order,
	selected *courier.Courier,
) error {
	orderID := aggregate.ID()

	customerNote, err := notification.NewNotification(
		kernel.NewUUID(),
		aggregate.CustomerID(),
		&orderID,
		notification.KindCourierAssigned,
		fmt.Sprintf("%s will deliver order %s.", selected.Name(), aggregate.TrackingNumber()),
	)
	if err != nil {
		return err
	}

	if err = notifications.Add(ctx, customerNote); err != nil {
		return err
	}

	courierNote, err := notification.NewNotification(
		kernel.NewUUID(),
		selected.ID(),
		&orderID,
		notification.KindNewAssignment,
		fmt.Sprintf("New assignment: order %s, pickup at %s.",
			aggregate.TrackingNumber(), aggregate.Route().PickupAddress()),
	)
	if err != nil {
		return err
	}

	return notifications.Add(ctx, courierNote)
}

// sendAssignmentEmail runs after commit. The courier's address is the only
// one on record; a send failure is logged and the assignment stands.
func sendAssignmentEmail(
	ctx context.Context,
	emailSender ports.EmailSender,
	logger *slog.Logger,
	aggregate *order.Order,
	selected *courier.Courier,
) {
	if selected.Email() == "" {
		return
	}

	subject := fmt.Sprintf("New delivery assignment %s", aggregate.TrackingNumber())
	body := fmt.Sprintf("Pickup at %s, deliver to %s.",
		aggregate.Route().PickupAddress(), aggregate.Route().DestinationAddress())

	if err := emailSender.Send(ctx, selected.Email(), subject, body); err != nil {
		logger.Warn("assignment email failed",
			slog.String("order_id", aggregate.ID().String()),
			slog.Any("error", err))
	}
}
