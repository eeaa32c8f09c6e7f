package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/notification"
	"swiftparcel/internal/core/domain/services"
	"swiftparcel/internal/core/ports"
)

// UpdateDestinationCommandHandler redirects an order and reprices it for the
// new route. Only Pending and Assigned orders can be redirected; the domain
// rejects later stages.
type UpdateDestinationCommandHandler struct {
	uowFactory       OrderUoWFactory
	distanceProvider ports.DistanceProvider
	pricingEngine    services.PricingEngine
	logger           *slog.Logger
}

// NewUpdateDestinationCommandHandler creates a handler for destination updates.
func NewUpdateDestinationCommandHandler(
	uowFactory OrderUoWFactory,
	distanceProvider ports.DistanceProvider,
	pricingEngine services.PricingEngine,
	logger *slog.Logger,
) UpdateDestinationCommandHandler {
	return UpdateDestinationCommandHandler{
		uowFactory:       uowFactory,
		distanceProvider: distanceProvider,
		pricingEngine:    pricingEngine,
		logger:           logger,
	}
}

// Handle processes the destination update: the route changes, the distance is
// re-measured and the price recomputed, all in one transaction.
func (h UpdateDestinationCommandHandler) Handle(ctx context.Context, cmd UpdateDestinationCommand) error {
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

	if err = aggregate.ChangeDestination(cmd.Destination(), cmd.Address()); err != nil {
		return err
	}

	route := aggregate.Route()
	distanceKm := h.measureDistance(ctx, route.Pickup(), route.Destination())

	breakdown, err := h.pricingEngine.Quote(distanceKm, aggregate.Parcel(), time.Now())
	if err != nil {
		return err
	}

	if err = aggregate.Reprice(distanceKm, breakdown.Total); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	orderID := aggregate.ID()
	note, err := notification.NewNotification(
		kernel.NewUUID(),
		aggregate.CustomerID(),
		&orderID,
		notification.KindStatusUpdated,
		fmt.Sprintf("Order %s redirected to %s. New total %s.",
			aggregate.TrackingNumber(), cmd.Address(), breakdown.Total),
	)
	if err != nil {
		return err
	}

	if err = uow.NotificationRepository().Add(ctx, note); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h UpdateDestinationCommandHandler) measureDistance(ctx context.Context, from, to kernel.GeoPoint) float64 {
	distanceKm, err := h.distanceProvider.RoadDistanceKm(ctx, from, to)
	if err == nil && distanceKm > 0 {
		return distanceKm
	}

	h.logger.Warn("routing provider unavailable, falling back to great-circle distance",
		slog.Any("error", err))
	return kernel.Haversine(from.Latitude(), from.Longitude(), to.Latitude(), to.Longitude())
}
